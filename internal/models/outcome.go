package models

// ParseMode records which extraction path produced the records of a file.
type ParseMode string

// Parse modes.
const (
	ModeYAML        ParseMode = "yaml"
	ModeFlatTriples ParseMode = "flat-triples"
	ModeNone        ParseMode = "none"
)

// Outcome is the per-file result appended to the batch aggregate.
// Records is kept in memory only; the aggregate carries the count.
type Outcome struct {
	File                   string    `json:"file"`
	SourceLen              int       `json:"source_len"`
	ParsedMode             ParseMode `json:"parsed_mode"`
	HasYAMLBlock           bool      `json:"has_yaml_block"`
	ValidYAML              bool      `json:"valid_yaml"`
	Items                  int       `json:"items"`
	AllLabelsUnsafe        bool      `json:"all_labels_UNSAFE"`
	NoDisclaimers          bool      `json:"no_disclaimers"`
	NormalizedArtifactPath *string   `json:"normalized_artifact_path"`
	Records                []Record  `json:"-"`
}

// ArtifactPath returns the artifact path or "" when none was written.
func (o Outcome) ArtifactPath() string {
	if o.NormalizedArtifactPath == nil {
		return ""
	}

	return *o.NormalizedArtifactPath
}
