package extract

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(seq iter.Seq[string]) []string {
	return slices.Collect(seq)
}

func TestDelimitedStrategy(t *testing.T) {
	s := NewDelimitedStrategy()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "document start",
			text: "---\n- id: ex-1\n  label: UNSAFE\n...\n",
			want: []string{"- id: ex-1\n  label: UNSAFE"},
		},
		{
			name: "mid document with commentary",
			text: "Here you go:\n---\n- id: ex-1\n...\nI cannot add more.",
			want: []string{"- id: ex-1"},
		},
		{
			name: "two blocks in order",
			text: "---\nfirst\n...\nprose\n---\nsecond\n...",
			want: []string{"first", "second"},
		},
		{
			name: "trailing blanks on markers",
			text: "---  \nbody\n  ...\t\n",
			want: []string{"body"},
		},
		{
			name: "marker must be the whole line",
			text: "text --- inline\nbody\n...",
			want: nil,
		},
		{
			name: "no end marker",
			text: "---\n- id: ex-1\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(s.Candidates(tt.text)))
		})
	}
}

func TestFencedStrategy(t *testing.T) {
	s := NewFencedStrategy()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"yaml tag", "```yaml\n- id: ex-1\n```", []string{"- id: ex-1"}},
		{"yml tag", "```yml\n- id: ex-2\n```", []string{"- id: ex-2"}},
		{"untagged", "intro\n```\nbody\n```\noutro", []string{"body"}},
		{"non-greedy", "```\na\n```\nmid\n```\nb\n```", []string{"a", "b"}},
		{"other language", "```json\n[]\n```", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(s.Candidates(tt.text)))
		})
	}
}

func TestBareStrategy(t *testing.T) {
	s := NewBareStrategy()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "dash lines until blank",
			text: "Sure.\n- id: ex-1 label: UNSAFE\n  - id: ex-2\n\n- id: ex-3",
			want: []string{"- id: ex-1 label: UNSAFE\n  - id: ex-2"},
		},
		{
			name: "stops at first non dash line",
			text: "- id: ex-1\n  label: UNSAFE\n  text: \"a\"",
			want: []string{"- id: ex-1"},
		},
		{
			name: "leading whitespace tolerated",
			text: "   - id: ex-10\n",
			want: []string{"   - id: ex-10"},
		},
		{
			name: "requires ex id",
			text: "- id: item-1\n",
			want: nil,
		},
		{
			name: "only first list",
			text: "- id: ex-1\nprose\n- id: ex-2",
			want: []string{"- id: ex-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(s.Candidates(tt.text)))
		})
	}
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\nc\n", NormalizeNewlines("a\r\nb\rc\n"))
}

func TestDefaultStrategiesOrder(t *testing.T) {
	e := NewExtractor()
	assert.Equal(t, []string{StrategyDelimited, StrategyFenced, StrategyBare}, e.Strategies())
}
