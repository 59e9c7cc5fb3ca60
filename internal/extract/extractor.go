package extract

import (
	"iter"

	"labelcheck/internal/models"
)

// Candidate is one block produced by a strategy.
type Candidate struct {
	Strategy string
	Text     string
}

// Result describes the first accepted block.
type Result struct {
	Records  []models.Record
	Strategy string
	// Tried counts candidates consumed, including the accepted one.
	Tried int
}

// Extractor runs its strategies in order and stops at the first block ParseBlock accepts.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor creates an extractor. With no strategies it uses DefaultStrategies.
func NewExtractor(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	return &Extractor{strategies: strategies}
}

// Strategies returns the strategy names in priority order.
func (e *Extractor) Strategies() []string {
	names := make([]string, 0, len(e.strategies))
	for _, s := range e.strategies {
		names = append(names, s.Name())
	}

	return names
}

// Candidates lazily yields every candidate of every strategy, in priority order.
func (e *Extractor) Candidates(text string) iter.Seq[Candidate] {
	text = NormalizeNewlines(text)

	return func(yield func(Candidate) bool) {
		for _, s := range e.strategies {
			for block := range s.Candidates(text) {
				if !yield(Candidate{Strategy: s.Name(), Text: block}) {
					return
				}
			}
		}
	}
}

// Extract returns the records of the first accepted candidate. When nothing is
// accepted, ok is false and Result.Tried still reports how many were rejected.
func (e *Extractor) Extract(text string) (res Result, ok bool) {
	for c := range e.Candidates(text) {
		res.Tried++

		records, accepted := ParseBlock(c.Text)
		if accepted {
			res.Records = records
			res.Strategy = c.Strategy

			return res, true
		}
	}

	return res, false
}
