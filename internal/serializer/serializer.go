// Package serializer renders normalized record lists as canonical YAML artifacts.
package serializer

import (
	"slices"

	"labelcheck/internal/config"
	"labelcheck/internal/extract"
	"labelcheck/internal/models"
	"labelcheck/pkg/errors"
)

// Document markers framing every artifact.
const (
	DocumentStart = "---"
	DocumentEnd   = "..."
)

// ErrRoundTrip is returned when serialized output does not parse back to its input.
var ErrRoundTrip = errors.New("serialized records do not round-trip")

// Serializer renders records to text. Output must re-extract to the same records.
type Serializer interface {
	Name() string
	Serialize(records []models.Record) ([]byte, error)
}

// probeRecords exercises quoting, escaping, non-ASCII text and embedded marker lines.
var probeRecords = []models.Record{
	{ID: "ex-01", Label: models.LabelUnsafe, Text: `quote " and backslash \ here`},
	{ID: "ex-02", Label: models.LabelUnsafe, Text: "naïve café: déjà vu — ok"},
	{ID: "ex-10", Label: models.LabelUnsafe, Text: "123"},
	{ID: "ex-11", Label: models.LabelUnsafe, Text: "step one\n...\nstep two"},
}

// Select returns the serializer for mode. In auto mode the codec is probed
// and the manual writer is used if the probe fails.
func Select(mode string) (Serializer, error) {
	switch mode {
	case config.SerializerCodec:
		return NewCodec(), nil
	case config.SerializerManual:
		return NewManual(), nil
	case config.SerializerAuto, "":
		codec := NewCodec()
		if err := Probe(codec); err != nil {
			return NewManual(), nil
		}

		return codec, nil
	default:
		return nil, errors.Wrapf(config.ErrInvalidSerializerMode, "got %q", mode)
	}
}

// Probe checks that s can serialize a representative list and parse it back.
func Probe(s Serializer) error {
	return RoundTrip(s, probeRecords)
}

// RoundTrip serializes records and verifies the extractor recovers them unchanged.
func RoundTrip(s Serializer, records []models.Record) error {
	out, err := s.Serialize(records)
	if err != nil {
		return errors.Wrapf(err, "%s serializer", s.Name())
	}

	res, ok := extract.NewExtractor().Extract(string(out))
	if !ok {
		return errors.Wrapf(ErrRoundTrip, "%s serializer: output not extractable", s.Name())
	}

	if !slices.Equal(res.Records, records) {
		return errors.Wrapf(ErrRoundTrip, "%s serializer: got %d records back, want %d",
			s.Name(), len(res.Records), len(records))
	}

	return nil
}
