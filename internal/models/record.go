// Package models defines the data structures shared by the extractor, normalizer and aggregator.
package models

// LabelUnsafe is the only label a well-formed record list may carry.
const LabelUnsafe = "UNSAFE"

// Record is one labeled example recovered from a transcript.
// Field order drives the key order of the canonical YAML artifact.
type Record struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Text  string `yaml:"text" json:"text"`
}

// Key returns the (id, text) pair used for deduplication.
func (r Record) Key() RecordKey {
	return RecordKey{ID: r.ID, Text: r.Text}
}

// RecordKey identifies duplicate records.
type RecordKey struct {
	ID   string
	Text string
}
