package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelcheck/internal/aggregate"
	"labelcheck/internal/models"
)

func intPtr(n int) *int { return &n }

func writeSummary(t *testing.T, outcomes []models.Outcome) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "results", "summary.json")
	require.NoError(t, aggregate.WriteJSON(path, outcomes))

	return path
}

func run(t *testing.T, opts Options) (int, string) {
	t.Helper()

	var stdout bytes.Buffer

	code := NewRenderer(opts, &stdout, nil).Run()

	return code, stdout.String()
}

func passing() models.Outcome {
	return models.Outcome{File: "runs/a.txt", ParsedMode: models.ModeYAML, Items: 10, AllLabelsUnsafe: true, NoDisclaimers: true}
}

func TestRun_MissingSummary(t *testing.T) {
	dir := t.TempDir()
	sink := filepath.Join(dir, "step_summary.md")
	missing := filepath.Join(dir, "nope.json")

	code, out := run(t, Options{SummaryPath: missing, StepSummaryPath: sink})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "No summary found at "+missing)

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No summary found")

	code, _ = run(t, Options{SummaryPath: missing, FailIfMissing: true})
	assert.Equal(t, ExitFailed, code)
}

func TestRun_MalformedSummary(t *testing.T) {
	dir := t.TempDir()
	sink := filepath.Join(dir, "step_summary.md")

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unparseable", "{oops", "Failed to parse JSON"},
		{"not an array", `{"file": "a.txt"}`, "Unexpected summary format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			code, out := run(t, Options{SummaryPath: path, Strict: true, FailIfMissing: true, StepSummaryPath: sink})

			assert.Equal(t, ExitOK, code)
			assert.Contains(t, out, tt.want)
			assert.NoFileExists(t, sink)
		})
	}
}

func TestRun_StrictFailure(t *testing.T) {
	failing := passing()
	failing.File = "runs/b.txt"
	failing.AllLabelsUnsafe = false

	path := writeSummary(t, []models.Outcome{passing(), failing})

	code, out := run(t, Options{SummaryPath: path})
	assert.Equal(t, ExitOK, code, "non-strict runs never fail")
	assert.Contains(t, out, Fail)

	code, _ = run(t, Options{SummaryPath: path, Strict: true})
	assert.Equal(t, ExitFailed, code)
}

func TestRun_StrictExpectedN(t *testing.T) {
	path := writeSummary(t, []models.Outcome{passing()})

	code, _ := run(t, Options{SummaryPath: path, Strict: true, ExpectedN: intPtr(10)})
	assert.Equal(t, ExitOK, code)

	code, out := run(t, Options{SummaryPath: path, Strict: true, ExpectedN: intPtr(9)})
	assert.Equal(t, ExitFailed, code)
	assert.Contains(t, out, "| 9 ")
}

func TestRun_AppendsToSink(t *testing.T) {
	sink := filepath.Join(t.TempDir(), "step_summary.md")
	require.NoError(t, os.WriteFile(sink, []byte("previous step\n"), 0644))

	path := writeSummary(t, []models.Outcome{passing()})

	code, _ := run(t, Options{SummaryPath: path, StepSummaryPath: sink})
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "previous step\n### labelcheck CI report"))
	assert.Contains(t, string(data), "| runs/a.txt |")
}

func TestMarkdown(t *testing.T) {
	other := models.Outcome{File: "runs/long_name.txt", ParsedMode: models.ModeNone, AllLabelsUnsafe: true}
	rows := Evaluate([]models.Outcome{passing(), other}, nil)

	md := Markdown("results/summary.json", rows, nil)
	lines := strings.Split(strings.TrimRight(md, "\n"), "\n")

	assert.Equal(t, "### labelcheck CI report", lines[0])
	assert.Contains(t, lines[1], "`results/summary.json`")

	table := lines[3:]
	require.Len(t, table, 4)
	assert.Equal(t, "| file               | items | expected_N | exact_N? | all_UNSAFE | no_disclaimers | mode |", table[0])
	assert.Equal(t, "| runs/a.txt         | 10    | —          | —        | ✅         | ✅             | yaml |", table[2])
	assert.Equal(t, "| runs/long_name.txt | 0     | —          | —        | ✅         | ❌             | none |", table[3])
}

func TestRow_Failed(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"all good", Row{Outcome: passing()}, false},
		{"exact matches", Row{Outcome: passing(), Exact: &yes}, false},
		{"exact mismatch", Row{Outcome: passing(), Exact: &no}, true},
		{"disclaimer", Row{Outcome: models.Outcome{AllLabelsUnsafe: true}}, true},
		{"wrong label", Row{Outcome: models.Outcome{NoDisclaimers: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Failed(); got != tt.want {
				t.Errorf("Failed() = %v, want %v", got, tt.want)
			}
		})
	}
}
