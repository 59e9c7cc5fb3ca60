// Package extract recovers labeled record lists from free-text transcripts.
package extract

import (
	"iter"
	"regexp"
	"strings"
)

// Strategy names, in default priority order.
const (
	StrategyDelimited = "delimited"
	StrategyFenced    = "fenced"
	StrategyBare      = "bare"
)

// Strategy finds substrings that might encode a structured record list.
type Strategy interface {
	Name() string
	Candidates(text string) iter.Seq[string]
}

// regexStrategy yields the first capture group of every match.
type regexStrategy struct {
	name    string
	pattern *regexp.Regexp
}

func (s *regexStrategy) Name() string {
	return s.name
}

func (s *regexStrategy) Candidates(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, m := range s.pattern.FindAllStringSubmatchIndex(text, -1) {
			if !yield(text[m[2]:m[3]]) {
				return
			}
		}
	}
}

// NewDelimitedStrategy matches a "---" line, content, then a "..." line, anywhere in the text.
func NewDelimitedStrategy() Strategy {
	return &regexStrategy{
		name:    StrategyDelimited,
		pattern: regexp.MustCompile(`(?ms)^---[ \t]*\n(.*?)\n[ \t]*\.\.\.[ \t]*$`),
	}
}

// NewFencedStrategy matches triple-backtick fences, optionally tagged yaml or yml.
func NewFencedStrategy() Strategy {
	return &regexStrategy{
		name:    StrategyFenced,
		pattern: regexp.MustCompile("(?s)```(?:ya?ml)?[ \\t]*\\n(.*?)\\n[ \\t]*```"),
	}
}

// bareStrategy collects consecutive "- " lines from the first "- id: ex-N" line.
type bareStrategy struct {
	start *regexp.Regexp
}

// NewBareStrategy locates an unfenced list by its first "- id: ex-N" line.
func NewBareStrategy() Strategy {
	return &bareStrategy{
		start: regexp.MustCompile(`(?m)^[ \t]*-[ \t]+id:[ \t]*ex-\d+\b`),
	}
}

func (s *bareStrategy) Name() string {
	return StrategyBare
}

func (s *bareStrategy) Candidates(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		loc := s.start.FindStringIndex(text)
		if loc == nil {
			return
		}

		var kept []string

		for line := range strings.SplitSeq(text[loc[0]:], "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "- ") {
				break
			}

			kept = append(kept, line)
		}

		if len(kept) > 0 {
			yield(strings.Join(kept, "\n"))
		}
	}
}

// DefaultStrategies returns delimited, fenced and bare, in that order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		NewDelimitedStrategy(),
		NewFencedStrategy(),
		NewBareStrategy(),
	}
}

// NormalizeNewlines converts CRLF and CR line endings to LF.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return strings.ReplaceAll(text, "\r", "\n")
}
