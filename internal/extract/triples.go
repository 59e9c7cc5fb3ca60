package extract

import (
	"regexp"

	"labelcheck/internal/models"
)

// TripleParser reads the degenerate one-line-per-record form:
//
//	id: ex-3 label: UNSAFE text: "..."
type TripleParser struct {
	pattern *regexp.Regexp
}

// NewTripleParser creates a parser for the given pattern. The pattern must
// capture id, label and text in groups 1 to 3.
func NewTripleParser(pattern *regexp.Regexp) *TripleParser {
	return &TripleParser{pattern: pattern}
}

// Parse returns one record per matching line, in document order.
// Labels are not checked here.
func (p *TripleParser) Parse(text string) []models.Record {
	var records []models.Record

	for _, m := range p.pattern.FindAllStringSubmatch(text, -1) {
		records = append(records, models.Record{
			ID:    m[1],
			Label: m[2],
			Text:  m[3],
		})
	}

	return records
}
