// Package report renders the batch aggregate as a markdown table for CI job summaries.
package report

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"labelcheck/internal/aggregate"
	"labelcheck/internal/formatter"
	"labelcheck/internal/logger"
	"labelcheck/internal/models"
	"labelcheck/pkg/errors"
)

// Exit codes returned by Run.
const (
	ExitOK     = 0
	ExitFailed = 1
)

// Cell indicators.
const (
	Pass = "✅"
	Fail = "❌"
	NA   = "—"
)

// Headers are the table columns in order.
var Headers = []string{"file", "items", "expected_N", "exact_N?", "all_UNSAFE", "no_disclaimers", "mode"}

// Options controls a report run.
type Options struct {
	SummaryPath   string
	ExpectedN     *int
	Strict        bool
	FailIfMissing bool
	// StepSummaryPath is the CI job summary file; empty disables the sink.
	StepSummaryPath string
}

// Renderer writes the report to stdout and the CI sink.
type Renderer struct {
	opts   Options
	stdout io.Writer
	log    *logger.Logger
}

// NewRenderer creates a renderer. A nil logger discards output.
func NewRenderer(opts Options, stdout io.Writer, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewNop()
	}

	return &Renderer{opts: opts, stdout: stdout, log: log}
}

// Row is one evaluated aggregate entry.
type Row struct {
	Outcome models.Outcome
	// Exact is nil when no expected count was given.
	Exact *bool
}

// Failed reports whether the row fails any check that strict mode enforces.
func (r Row) Failed() bool {
	if r.Exact != nil && !*r.Exact {
		return true
	}

	return !r.Outcome.AllLabelsUnsafe || !r.Outcome.NoDisclaimers
}

// Evaluate applies the checks to every outcome.
func Evaluate(outcomes []models.Outcome, expectedN *int) []Row {
	rows := make([]Row, len(outcomes))

	for i, o := range outcomes {
		rows[i].Outcome = o

		if expectedN != nil {
			exact := o.Items == *expectedN
			rows[i].Exact = &exact
		}
	}

	return rows
}

// Heading introduces the table.
func Heading(summaryPath string) string {
	return fmt.Sprintf("### labelcheck CI report\n"+
		"Parsed metrics from `%s`. The exact-N check is informational; "+
		"the build only fails on it with `--strict`.\n", summaryPath)
}

// Markdown renders the heading and aligned table.
func Markdown(summaryPath string, rows []Row, expectedN *int) string {
	expected := NA
	if expectedN != nil {
		expected = strconv.Itoa(*expectedN)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Outcome.File,
			strconv.Itoa(r.Outcome.Items),
			expected,
			indicator(r.Exact),
			check(r.Outcome.AllLabelsUnsafe),
			check(r.Outcome.NoDisclaimers),
			string(r.Outcome.ParsedMode),
		})
	}

	var sb strings.Builder

	sb.WriteString(Heading(summaryPath))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(formatter.Table(Headers, cells), "\n"))
	sb.WriteString("\n")

	return sb.String()
}

// Run renders the report and returns the process exit code. Only a missing
// aggregate with FailIfMissing, or a failing row under Strict, yields ExitFailed.
func (r *Renderer) Run() int {
	outcomes, err := aggregate.Load(r.opts.SummaryPath)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		msg := fmt.Sprintf("⚠️ No summary found at %s. Run the normalizer or commit the aggregate.", r.opts.SummaryPath)
		r.println(msg)
		r.appendSink(msg + "\n")

		if r.opts.FailIfMissing {
			return ExitFailed
		}

		return ExitOK
	case errors.Is(err, aggregate.ErrNotArray):
		r.println("Unexpected summary format (expected a list).")
		return ExitOK
	case err != nil:
		r.println(fmt.Sprintf("Failed to parse JSON: %v", err))
		return ExitOK
	}

	rows := Evaluate(outcomes, r.opts.ExpectedN)
	md := Markdown(r.opts.SummaryPath, rows, r.opts.ExpectedN)

	r.println(md)
	r.appendSink(md)

	failures := 0
	for _, row := range rows {
		if row.Failed() {
			failures++
		}
	}

	r.log.Debug("report rendered", "rows", len(rows), "failing", failures, "strict", r.opts.Strict)

	if r.opts.Strict && failures > 0 {
		return ExitFailed
	}

	return ExitOK
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.stdout, s)
}

// appendSink appends to the CI summary file. Failures are logged, never fatal.
func (r *Renderer) appendSink(s string) {
	if r.opts.StepSummaryPath == "" {
		return
	}

	f, err := os.OpenFile(r.opts.StepSummaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		r.log.Warn("cannot open step summary", "path", r.opts.StepSummaryPath, "error", err)
		return
	}
	defer f.Close()

	if _, err := io.WriteString(f, s); err != nil {
		r.log.Warn("cannot write step summary", "path", r.opts.StepSummaryPath, "error", err)
	}
}

func check(ok bool) string {
	if ok {
		return Pass
	}

	return Fail
}

func indicator(v *bool) string {
	if v == nil {
		return NA
	}

	return check(*v)
}
