// Package main provides the normalizer command: it turns transcripts into
// canonical record artifacts and writes the batch aggregate.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"labelcheck/internal/aggregate"
	"labelcheck/internal/config"
	"labelcheck/internal/logger"
	"labelcheck/internal/models"
	"labelcheck/internal/normalizer"
	"labelcheck/pkg/errors"
)

// ErrNoInputs is returned when neither paths nor the configured glob yield a file.
var ErrNoInputs = errors.Invalidf("no input files")

type options struct {
	configPath string
	jsonOut    string
	ndjsonOut  string
	outDir     string
	ext        string
	serializer string
	workers    int
	quiet      bool
	logLevel   string
	dumpConfig string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "normalizer [paths...]",
		Short: "Extract, normalize and validate labeled records from transcripts",
		Long: `normalizer recovers the labeled example list from each transcript,
writes one canonical YAML artifact per file and a JSON aggregate of per-file
outcomes.

Without paths the configured input glob is used (default runs/*.txt).

Examples:
  normalizer                                   # process runs/*.txt
  normalizer runs/a.txt runs/b.txt --quiet
  normalizer --workers 4 --ndjson-out out/summary.ndjson
  normalizer --workers 4 --dump-config labelcheck.yaml  # save effective config`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Path to YAML config file")
	f.StringVar(&opts.jsonOut, "json-out", "", "Aggregate JSON path")
	f.StringVar(&opts.ndjsonOut, "ndjson-out", "", "Optional NDJSON aggregate path")
	f.StringVar(&opts.outDir, "out-dir", "", "Directory for normalized artifacts")
	f.StringVar(&opts.ext, "ext", "", "Artifact file extension")
	f.StringVar(&opts.serializer, "serializer", "", "Serializer: auto, codec or manual")
	f.IntVar(&opts.workers, "workers", 0, "Files processed in parallel")
	f.BoolVar(&opts.quiet, "quiet", false, "Do not print the aggregate to stdout")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&opts.dumpConfig, "dump-config", "", "Write the effective config to this path and exit")

	return cmd
}

// loadConfig reads the config file, if any, and applies explicitly set flags on top.
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
	if f.Changed("json-out") {
		cfg.Output.JSONPath = opts.jsonOut
	}

	if f.Changed("ndjson-out") {
		cfg.Output.NDJSONPath = opts.ndjsonOut
	}

	if f.Changed("out-dir") {
		cfg.Output.Dir = opts.outDir
	}

	if f.Changed("ext") {
		cfg.Output.Extension = opts.ext
	}

	if f.Changed("serializer") {
		cfg.Serializer.Mode = opts.serializer
	}

	if f.Changed("workers") {
		cfg.Processing.Workers = opts.workers
	}

	if f.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if opts.dumpConfig != "" {
		if err := cfg.SaveConfig(opts.dumpConfig); err != nil {
			return err
		}

		if !opts.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote config: %s\n", opts.dumpConfig)
		}

		return nil
	}

	log := logger.NewLogger(cfg.Logging.Level)
	defer func() { _ = log.Sync() }()

	paths := args
	if len(paths) == 0 {
		paths, err = cfg.ExpandInputs()
		if err != nil {
			return err
		}
	}

	if len(paths) == 0 {
		return errors.WithHint(errors.Wrapf(ErrNoInputs, "glob %q matched nothing", cfg.Input.Glob),
			"pass transcript paths or set input.glob")
	}

	processor, err := normalizer.NewProcessor(cfg, normalizer.WithLogger(log))
	if err != nil {
		return err
	}

	outcomes, err := processor.ProcessBatch(cmd.Context(), paths)
	if err != nil {
		return err
	}

	if err := aggregate.WriteJSON(cfg.Output.JSONPath, outcomes); err != nil {
		return err
	}

	if cfg.Output.NDJSONPath != "" {
		if err := aggregate.WriteNDJSON(cfg.Output.NDJSONPath, outcomes); err != nil {
			return err
		}
	}

	if opts.quiet {
		return nil
	}

	return printSummary(cmd.OutOrStdout(), cfg, outcomes)
}

func printSummary(w io.Writer, cfg *config.Config, outcomes []models.Outcome) error {
	data, err := aggregate.Encode(outcomes)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write stdout")
	}

	fmt.Fprintf(w, "Wrote JSON: %s\n", cfg.Output.JSONPath)

	if cfg.Output.NDJSONPath != "" {
		fmt.Fprintf(w, "Wrote NDJSON: %s\n", cfg.Output.NDJSONPath)
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)

		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}

		if errors.IsInvalidInput(err) {
			fmt.Fprintln(os.Stderr, "Run 'normalizer --help' for usage.")
		}

		stop()
		os.Exit(1)
	}
}
