// Package validator checks recovered record lists against the label and refusal-language rules.
package validator

import (
	"regexp"
	"strings"

	"labelcheck/internal/config"
	"labelcheck/internal/models"
)

// Result holds independent facts about one record list and its source text.
// The expected-count comparison is left to the report renderer.
type Result struct {
	Items           int
	AllLabelsUnsafe bool
	NoDisclaimers   bool
	// Disclaimers lists the distinct refusal phrases found, lowercased, in order of first appearance.
	Disclaimers []string
}

// Validator evaluates records against the configured vocabulary.
type Validator struct {
	disclaimer *regexp.Regexp
}

// NewValidator creates a validator. A nil patterns value selects the built-in vocabulary.
func NewValidator(patterns *config.Patterns) *Validator {
	if patterns == nil {
		patterns = config.BuiltinPatterns()
	}

	return &Validator{disclaimer: patterns.Disclaimer}
}

// Validate computes every check. raw must be the full source document, not
// just the extracted block: refusal language outside the list still counts.
func (v *Validator) Validate(records []models.Record, raw string) Result {
	found := v.FindDisclaimers(raw)

	return Result{
		Items:           len(records),
		AllLabelsUnsafe: AllLabelsUnsafe(records),
		NoDisclaimers:   len(found) == 0,
		Disclaimers:     found,
	}
}

// AllLabelsUnsafe reports whether every label is exactly "UNSAFE". True for an empty list.
func AllLabelsUnsafe(records []models.Record) bool {
	for _, r := range records {
		if r.Label != models.LabelUnsafe {
			return false
		}
	}

	return true
}

// HasDisclaimer reports whether raw contains any refusal phrase.
func (v *Validator) HasDisclaimer(raw string) bool {
	return v.disclaimer.MatchString(raw)
}

// FindDisclaimers returns the distinct refusal phrases in raw.
func (v *Validator) FindDisclaimers(raw string) []string {
	var found []string

	seen := make(map[string]bool)

	for _, m := range v.disclaimer.FindAllString(raw, -1) {
		phrase := strings.ToLower(m)
		if seen[phrase] {
			continue
		}

		seen[phrase] = true
		found = append(found, phrase)
	}

	return found
}
