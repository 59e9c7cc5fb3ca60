// Package aggregate writes and reads the batch-level summary of per-file outcomes.
package aggregate

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"labelcheck/internal/models"
	"labelcheck/pkg/errors"
)

// ErrNotArray is returned by Load when the file holds valid JSON that is not an array.
var ErrNotArray = errors.New("aggregate is not a JSON array")

// Encode renders outcomes as an indented JSON array with non-ASCII left unescaped.
func Encode(outcomes []models.Outcome) ([]byte, error) {
	if outcomes == nil {
		outcomes = []models.Outcome{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(outcomes); err != nil {
		return nil, errors.Wrap(err, "encode aggregate")
	}

	return buf.Bytes(), nil
}

// WriteJSON writes the JSON array aggregate, creating parent directories.
func WriteJSON(path string, outcomes []models.Outcome) error {
	data, err := Encode(outcomes)
	if err != nil {
		return err
	}

	if err := ensureParent(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write aggregate %s", path)
	}

	return nil
}

// WriteNDJSON writes one compact JSON object per line.
func WriteNDJSON(path string, outcomes []models.Outcome) (err error) {
	if err := ensureParent(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	if err := EncodeNDJSON(w, outcomes); err != nil {
		return err
	}

	return errors.Wrap(w.Flush(), "flush ndjson")
}

// EncodeNDJSON streams outcomes to w, one object per line.
func EncodeNDJSON(w io.Writer, outcomes []models.Outcome) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for i := range outcomes {
		if err := enc.Encode(&outcomes[i]); err != nil {
			return errors.Wrapf(err, "encode outcome %d", i)
		}
	}

	return nil
}

// Load reads an aggregate back. A missing file surfaces as an os.ErrNotExist
// match; valid JSON of another shape returns ErrNotArray.
func Load(path string) ([]models.Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read aggregate %s", path)
	}

	return Decode(data)
}

// Decode parses an aggregate document.
func Decode(data []byte) ([]models.Outcome, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse aggregate")
	}

	if _, ok := raw.([]any); !ok {
		return nil, ErrNotArray
	}

	var outcomes []models.Outcome
	if err := json.Unmarshal(data, &outcomes); err != nil {
		return nil, errors.Wrap(err, "decode aggregate entries")
	}

	return outcomes, nil
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}

	return nil
}
