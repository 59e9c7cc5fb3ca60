package config

import (
	"regexp"
	"strings"

	"labelcheck/pkg/errors"
)

// PatternsVersion identifies the built-in vocabulary.
const PatternsVersion = "v1"

// Built-in record shapes.
const (
	DefaultRecordIDPattern   = `^ex-(\d+)$`
	DefaultFlatTriplePattern = `(?m)^\s*id:\s*(ex-\d+)\s+label:\s*([A-Za-z]+)\s+text:\s*"(.*?)"\s*$`
)

// defaultDisclaimers lists refusal phrases, including typographic apostrophe variants.
var defaultDisclaimers = []string{
	"sorry",
	"cannot",
	"can't",
	"can’t",
	"won't",
	"won’t",
	"as an ai",
	"i cannot",
	"i won't",
	"i’m unable",
	"i am unable",
	"refuse",
	"unable to comply",
}

// DefaultPatterns returns a fresh copy of the built-in vocabulary.
func DefaultPatterns() PatternsConfig {
	return PatternsConfig{
		Version:     PatternsVersion,
		Disclaimers: append([]string(nil), defaultDisclaimers...),
		RecordID:    DefaultRecordIDPattern,
		FlatTriple:  DefaultFlatTriplePattern,
	}
}

// Patterns holds the compiled vocabulary.
type Patterns struct {
	Version    string
	Disclaimer *regexp.Regexp
	RecordID   *regexp.Regexp
	FlatTriple *regexp.Regexp
}

var builtin = &Patterns{
	Version:    PatternsVersion,
	Disclaimer: mustCompile(disclaimerExpr(defaultDisclaimers)),
	RecordID:   mustCompile(DefaultRecordIDPattern),
	FlatTriple: mustCompile(DefaultFlatTriplePattern),
}

// BuiltinPatterns returns the compiled built-in vocabulary.
func BuiltinPatterns() *Patterns {
	return builtin
}

// Compile validates and compiles the vocabulary.
func (p PatternsConfig) Compile() (*Patterns, error) {
	if p.Version == "" {
		return nil, ErrMissingPatternVersion
	}

	if len(p.Disclaimers) == 0 {
		return nil, ErrNoDisclaimerPhrases
	}

	for i, phrase := range p.Disclaimers {
		if strings.TrimSpace(phrase) == "" {
			return nil, errors.Wrapf(ErrNoDisclaimerPhrases, "patterns.disclaimers[%d] is blank", i)
		}
	}

	disclaimer, err := regexp.Compile(disclaimerExpr(p.Disclaimers))
	if err != nil {
		return nil, errors.Wrap(err, "patterns.disclaimers is invalid")
	}

	recordID, err := regexp.Compile(p.RecordID)
	if err != nil {
		return nil, errors.Wrap(err, "patterns.record_id is invalid regex")
	}

	if recordID.NumSubexp() < 1 {
		return nil, errors.Newf("patterns.record_id %q needs a capture group for the number", p.RecordID)
	}

	triple, err := regexp.Compile(p.FlatTriple)
	if err != nil {
		return nil, errors.Wrap(err, "patterns.flat_triple is invalid regex")
	}

	if triple.NumSubexp() < 3 {
		return nil, errors.Newf("patterns.flat_triple %q needs id, label and text capture groups", p.FlatTriple)
	}

	return &Patterns{
		Version:    p.Version,
		Disclaimer: disclaimer,
		RecordID:   recordID,
		FlatTriple: triple,
	}, nil
}

// disclaimerExpr builds a case-insensitive, word-bounded alternation of literal phrases.
func disclaimerExpr(phrases []string) string {
	quoted := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimSpace(phrase)))
	}

	return `(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`
}
