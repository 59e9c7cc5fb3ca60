package normalizer

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"labelcheck/internal/config"
	"labelcheck/internal/models"
)

// Transformer canonicalizes record lists: trim, pad ids, dedupe, sort.
type Transformer struct {
	idPattern *regexp.Regexp
}

// NewTransformer creates a transformer using the built-in record id pattern.
func NewTransformer() *Transformer {
	return NewTransformerWithPattern(config.BuiltinPatterns().RecordID)
}

// NewTransformerWithPattern creates a transformer for a custom id pattern.
// Group 1 of the pattern must capture the numeric suffix.
func NewTransformerWithPattern(idPattern *regexp.Regexp) *Transformer {
	return &Transformer{idPattern: idPattern}
}

// Normalize returns the canonical form of records. The input is not modified
// and Normalize(Normalize(x)) equals Normalize(x).
func (t *Transformer) Normalize(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	seen := make(map[models.RecordKey]struct{}, len(records))

	for _, r := range records {
		n := models.Record{
			ID:    t.PadID(strings.TrimSpace(r.ID)),
			Label: strings.TrimSpace(r.Label),
			Text:  strings.TrimSpace(r.Text),
		}

		if _, dup := seen[n.Key()]; dup {
			continue
		}

		seen[n.Key()] = struct{}{}
		out = append(out, n)
	}

	slices.SortStableFunc(out, func(a, b models.Record) int {
		return compareNumeric(t.sortKey(a.ID), t.sortKey(b.ID))
	})

	return out
}

// PadID zero-pads a single-digit suffix: ex-1 -> ex-01. Anything else is returned unchanged.
func (t *Transformer) PadID(id string) string {
	m := t.idPattern.FindStringSubmatchIndex(id)
	if m == nil || m[3]-m[2] != 1 {
		return id
	}

	return id[:m[2]] + "0" + id[m[2]:]
}

// sortKey extracts the numeric suffix without leading zeros. Ids that do not
// match sort as zero.
func (t *Transformer) sortKey(id string) string {
	m := t.idPattern.FindStringSubmatch(id)
	if m == nil {
		return ""
	}

	return strings.TrimLeft(m[1], "0")
}

// compareNumeric orders decimal digit strings without leading zeros by value.
func compareNumeric(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}

	return strings.Compare(a, b)
}
