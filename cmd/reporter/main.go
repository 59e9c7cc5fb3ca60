// Package main provides the reporter command, which renders the batch
// aggregate as a markdown table for CI job summaries.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labelcheck/internal/config"
	"labelcheck/internal/logger"
	"labelcheck/internal/report"
	"labelcheck/pkg/errors"
)

type options struct {
	configPath    string
	summary       string
	expectedN     int
	failIfMissing bool
	strict        bool
}

// exitError carries a non-zero exit code without an error message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd(getenv func(string) string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "reporter",
		Short: "Render the normalizer aggregate as a markdown report",
		Long: `reporter reads the JSON aggregate written by the normalizer and prints a
markdown table of per-file checks. When GITHUB_STEP_SUMMARY is set the report
is also appended to that file.

The run is non-blocking: it only exits non-zero with --strict (a failing row)
or --fail-if-missing (no aggregate).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Logging.Level)
			defer func() { _ = log.Sync() }()

			r := report.NewRenderer(report.Options{
				SummaryPath:     cfg.Report.Summary,
				ExpectedN:       cfg.Report.ExpectedN,
				Strict:          cfg.Report.Strict,
				FailIfMissing:   cfg.Report.FailIfMissing,
				StepSummaryPath: getenv(cfg.Report.StepSummaryEnv),
			}, cmd.OutOrStdout(), log)

			if code := r.Run(); code != report.ExitOK {
				return exitError{code: code}
			}

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	f.StringVar(&opts.summary, "summary", "", "Path to aggregated JSON summary (default results/summary.json)")
	f.IntVar(&opts.expectedN, "expected-n", 0, "Report whether item counts equal this number")
	f.BoolVar(&opts.failIfMissing, "fail-if-missing", false, "Exit non-zero if the summary file is missing")
	f.BoolVar(&opts.strict, "strict", false, "Exit non-zero if any check fails")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("summary") {
		cfg.Report.Summary = opts.summary
	}

	if f.Changed("expected-n") {
		n := opts.expectedN
		cfg.Report.ExpectedN = &n
	}

	if f.Changed("fail-if-missing") {
		cfg.Report.FailIfMissing = opts.failIfMissing
	}

	if f.Changed("strict") {
		cfg.Report.Strict = opts.strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func main() {
	err := newRootCmd(os.Getenv).Execute()
	if err == nil {
		return
	}

	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}

	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	os.Exit(1)
}
