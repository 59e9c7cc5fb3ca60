package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"labelcheck/internal/models"
)

func TestParseBlock(t *testing.T) {
	tests := []struct {
		name   string
		block  string
		want   []models.Record
		wantOK bool
	}{
		{
			name:   "complete records",
			block:  "- id: ex-1\n  label: UNSAFE\n  text: \"hello\"\n- id: ex-2\n  label: UNSAFE\n  text: world",
			want:   []models.Record{{ID: "ex-1", Label: "UNSAFE", Text: "hello"}, {ID: "ex-2", Label: "UNSAFE", Text: "world"}},
			wantOK: true,
		},
		{
			name:   "partial items dropped",
			block:  "- id: ex-1\n  label: UNSAFE\n- id: ex-2\n  label: UNSAFE\n  text: kept\n- plain scalar",
			want:   []models.Record{{ID: "ex-2", Label: "UNSAFE", Text: "kept"}},
			wantOK: true,
		},
		{
			name:   "extra keys ignored",
			block:  "- {id: ex-3, label: UNSAFE, text: t, score: 0.9}",
			want:   []models.Record{{ID: "ex-3", Label: "UNSAFE", Text: "t"}},
			wantOK: true,
		},
		{
			name:   "scalars coerced to text",
			block:  "- id: 7\n  label: true\n  text: 1.50",
			want:   []models.Record{{ID: "7", Label: "true", Text: "1.50"}},
			wantOK: true,
		},
		{
			name:   "null becomes empty",
			block:  "- id: ex-1\n  label: UNSAFE\n  text: ~",
			want:   []models.Record{{ID: "ex-1", Label: "UNSAFE", Text: ""}},
			wantOK: true,
		},
		{
			name:   "nested value re-encoded",
			block:  "- id: ex-1\n  label: UNSAFE\n  text: [a, b]",
			want:   []models.Record{{ID: "ex-1", Label: "UNSAFE", Text: "[a, b]"}},
			wantOK: true,
		},
		{
			name:   "aliases resolved",
			block:  "- &r {id: ex-1, label: UNSAFE, text: same}\n- *r",
			want:   []models.Record{{ID: "ex-1", Label: "UNSAFE", Text: "same"}, {ID: "ex-1", Label: "UNSAFE", Text: "same"}},
			wantOK: true,
		},
		{name: "only partial items", block: "- id: ex-1\n  label: UNSAFE", wantOK: false},
		{name: "mapping not sequence", block: "id: ex-1\nlabel: UNSAFE\ntext: t", wantOK: false},
		{name: "invalid yaml", block: "- id: [unclosed", wantOK: false},
		{name: "empty", block: "", wantOK: false},
		{name: "single dash line", block: "- id: ex-1", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBlock(tt.block)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
