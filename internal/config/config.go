// Package config provides configuration management for the labelcheck tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"labelcheck/pkg/errors"
)

// Configuration validation errors.
var (
	ErrMissingInputGlob      = errors.New("input.glob is required")
	ErrMissingOutputDir      = errors.New("output.dir is required")
	ErrInvalidExtension      = errors.New("output.extension must start with '.'")
	ErrMissingJSONPath       = errors.New("output.json_path is required")
	ErrInvalidSerializerMode = errors.New("serializer.mode must be one of: auto, codec, manual")
	ErrInvalidWorkers        = errors.New("processing.workers must be at least 1")
	ErrNoDisclaimerPhrases   = errors.New("patterns.disclaimers must not be empty")
	ErrMissingPatternVersion = errors.New("patterns.version is required")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidExpectedN      = errors.New("report.expected_n must be non-negative")
)

// Serializer modes.
const (
	SerializerAuto   = "auto"
	SerializerCodec  = "codec"
	SerializerManual = "manual"
)

// DefaultStepSummaryEnv is the CI variable naming the job summary file.
const DefaultStepSummaryEnv = "GITHUB_STEP_SUMMARY"

// Config represents the complete labelcheck configuration.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Serializer SerializerConfig `yaml:"serializer"`
	Processing ProcessingConfig `yaml:"processing"`
	Patterns   PatternsConfig   `yaml:"patterns"`
	Logging    LoggingConfig    `yaml:"logging"`
	Report     ReportConfig     `yaml:"report"`
}

// InputConfig selects transcripts when no paths are given.
type InputConfig struct {
	Glob string `yaml:"glob"`
}

// OutputConfig defines where artifacts and aggregates go.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Extension  string `yaml:"extension"`
	JSONPath   string `yaml:"json_path"`
	NDJSONPath string `yaml:"ndjson_path"`
}

// SerializerConfig picks the canonical artifact writer.
type SerializerConfig struct {
	Mode string `yaml:"mode"`
}

// ProcessingConfig controls batch execution.
type ProcessingConfig struct {
	Workers int `yaml:"workers"`
}

// PatternsConfig is the versioned vocabulary used by the parsers and validator.
type PatternsConfig struct {
	Version     string   `yaml:"version"`
	Disclaimers []string `yaml:"disclaimers"`
	RecordID    string   `yaml:"record_id"`
	FlatTriple  string   `yaml:"flat_triple"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ReportConfig holds the report renderer settings.
type ReportConfig struct {
	Summary        string `yaml:"summary"`
	ExpectedN      *int   `yaml:"expected_n"`
	Strict         bool   `yaml:"strict"`
	FailIfMissing  bool   `yaml:"fail_if_missing"`
	StepSummaryEnv string `yaml:"step_summary_env"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{Glob: "runs/*.txt"},
		Output: OutputConfig{
			Dir:       "runs_normalized",
			Extension: ".yaml",
			JSONPath:  "runs_normalized/summary.json",
		},
		Serializer: SerializerConfig{Mode: SerializerAuto},
		Processing: ProcessingConfig{Workers: 1},
		Patterns:   DefaultPatterns(),
		Logging:    LoggingConfig{Level: "info"},
		Report: ReportConfig{
			Summary:        "results/summary.json",
			StepSummaryEnv: DefaultStepSummaryEnv,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of Default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.Glob == "" {
		return ErrMissingInputGlob
	}

	if _, err := filepath.Match(c.Input.Glob, ""); err != nil {
		return errors.Wrapf(err, "input.glob %q is invalid", c.Input.Glob)
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if !strings.HasPrefix(c.Output.Extension, ".") {
		return ErrInvalidExtension
	}

	if c.Output.JSONPath == "" {
		return ErrMissingJSONPath
	}

	switch c.Serializer.Mode {
	case SerializerAuto, SerializerCodec, SerializerManual:
	default:
		return ErrInvalidSerializerMode
	}

	if c.Processing.Workers < 1 {
		return ErrInvalidWorkers
	}

	if _, err := c.Patterns.Compile(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Report.ExpectedN != nil && *c.Report.ExpectedN < 0 {
		return ErrInvalidExpectedN
	}

	return nil
}

// ArtifactPath follows structure: {dir}/{input basename without extension}{extension}.
func (c *Config) ArtifactPath(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(c.Output.Dir, stem+c.Output.Extension)
}

// ExpandInputs returns the sorted glob matches used when no paths are given.
func (c *Config) ExpandInputs() ([]string, error) {
	matches, err := filepath.Glob(c.Input.Glob)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %q", c.Input.Glob)
	}

	return matches, nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Glob: %s, OutputDir: %s, Serializer: %s, Workers: %d, Patterns: %s}",
		c.Input.Glob,
		c.Output.Dir,
		c.Serializer.Mode,
		c.Processing.Workers,
		c.Patterns.Version,
	)
}

// mustCompile is used for the built-in patterns only.
func mustCompile(expr string) *regexp.Regexp {
	return regexp.MustCompile(expr)
}
