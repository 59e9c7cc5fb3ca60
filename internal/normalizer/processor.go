// Package normalizer turns raw transcripts into canonical record lists and per-file outcomes.
package normalizer

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"labelcheck/internal/config"
	"labelcheck/internal/extract"
	"labelcheck/internal/logger"
	"labelcheck/internal/models"
	"labelcheck/internal/serializer"
	"labelcheck/internal/validator"
	"labelcheck/pkg/errors"
)

// Processor handles one transcript end to end: extract, normalize, validate, serialize.
type Processor struct {
	cfg         *config.Config
	extractor   *extract.Extractor
	triples     *extract.TripleParser
	transformer *Transformer
	validator   *validator.Validator
	serializer  serializer.Serializer
	log         *logger.Logger

	dirOnce sync.Once
	dirErr  error
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *logger.Logger) Option {
	return func(p *Processor) {
		p.log = l
	}
}

// WithSerializer overrides the serializer chosen from the config.
func WithSerializer(s serializer.Serializer) Option {
	return func(p *Processor) {
		p.serializer = s
	}
}

// WithExtractor overrides the default extraction strategies.
func WithExtractor(e *extract.Extractor) Option {
	return func(p *Processor) {
		p.extractor = e
	}
}

// NewProcessor creates a new processor instance.
func NewProcessor(cfg *config.Config, opts ...Option) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	patterns, err := cfg.Patterns.Compile()
	if err != nil {
		return nil, err
	}

	p := &Processor{
		cfg:         cfg,
		extractor:   extract.NewExtractor(),
		triples:     extract.NewTripleParser(patterns.FlatTriple),
		transformer: NewTransformerWithPattern(patterns.RecordID),
		validator:   validator.NewValidator(patterns),
		log:         logger.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.serializer == nil {
		p.serializer, err = serializer.Select(cfg.Serializer.Mode)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Serializer returns the serializer in use.
func (p *Processor) Serializer() serializer.Serializer {
	return p.serializer
}

// ProcessBatch processes paths and returns outcomes in input order, whatever
// order the workers finish in. Per-file failures become "none" outcomes; only
// cancellation of ctx aborts the batch.
func (p *Processor) ProcessBatch(ctx context.Context, paths []string) ([]models.Outcome, error) {
	log := p.log.With("run_id", uuid.NewString())
	log.Info("batch started", "files", len(paths), "workers", p.cfg.Processing.Workers, "serializer", p.serializer.Name())

	if err := p.ensureOutputDir(); err != nil {
		log.Error("output directory unavailable, artifacts will not be written", "dir", p.cfg.Output.Dir, "error", err)
	}

	p.warnArtifactCollisions(log, paths)

	outcomes := make([]models.Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Processing.Workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			outcomes[i] = p.processFile(log, path)
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "batch interrupted")
	}

	log.Info("batch finished", "files", len(outcomes))

	return outcomes, nil
}

// ProcessFile processes a single transcript. It never fails: problems are
// logged and reported as a "none" outcome.
func (p *Processor) ProcessFile(path string) models.Outcome {
	if err := p.ensureOutputDir(); err != nil {
		p.log.Error("output directory unavailable", "dir", p.cfg.Output.Dir, "error", err)
	}

	return p.processFile(p.log, path)
}

func (p *Processor) processFile(log *logger.Logger, path string) models.Outcome {
	log = log.With("file", path)

	raw, err := readText(path)
	if err != nil {
		log.Warn("cannot read input", "error", err)
		return p.noneOutcome(path, "")
	}

	out, err := p.processText(log, path, raw)
	if err != nil {
		log.Warn("processing failed, reporting no records", "error", err)
		return p.noneOutcome(path, raw)
	}

	log.Info("processed",
		"mode", out.ParsedMode,
		"items", out.Items,
		"all_labels_UNSAFE", out.AllLabelsUnsafe,
		"no_disclaimers", out.NoDisclaimers,
		"artifact", out.ArtifactPath(),
	)

	return out
}

// processText runs the pipeline on decoded text and writes the artifact.
func (p *Processor) processText(log *logger.Logger, path, raw string) (out models.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Recovered(r)
		}
	}()

	out = p.noneOutcome(path, raw)

	res, ok := p.extractor.Extract(raw)

	records := res.Records
	if ok {
		out.ParsedMode = models.ModeYAML
		out.HasYAMLBlock = true
		out.ValidYAML = true

		log.Debug("block accepted", "strategy", res.Strategy, "candidates", res.Tried)
	} else {
		log.Debug("no block accepted", "candidates", res.Tried)

		// No structured block anywhere: fall back to one-line triples.
		records = p.triples.Parse(raw)
		if len(records) == 0 {
			return out, nil
		}

		out.ParsedMode = models.ModeFlatTriples
	}

	records = p.transformer.Normalize(records)

	v := p.validator.Validate(records, raw)
	out.Items = v.Items
	out.AllLabelsUnsafe = v.AllLabelsUnsafe
	out.NoDisclaimers = v.NoDisclaimers
	out.Records = records

	if len(v.Disclaimers) > 0 {
		log.Debug("refusal language found", "phrases", v.Disclaimers)
	}

	data, err := p.serializer.Serialize(records)
	if err != nil {
		return out, errors.Wrap(err, "serialize records")
	}

	artifact := p.cfg.ArtifactPath(path)
	if err := writeFile(artifact, data); err != nil {
		return out, err
	}

	out.NormalizedArtifactPath = &artifact

	return out, nil
}

// noneOutcome reports a file with no recovered records. Disclaimers are still
// checked against raw, and the label check is vacuously true.
func (p *Processor) noneOutcome(path, raw string) models.Outcome {
	return models.Outcome{
		File:            path,
		SourceLen:       utf8.RuneCountInString(raw),
		ParsedMode:      models.ModeNone,
		AllLabelsUnsafe: true,
		NoDisclaimers:   !p.validator.HasDisclaimer(raw),
	}
}

func (p *Processor) ensureOutputDir() error {
	p.dirOnce.Do(func() {
		if err := os.MkdirAll(p.cfg.Output.Dir, 0755); err != nil {
			p.dirErr = errors.Wrapf(err, "create output directory %s", p.cfg.Output.Dir)
		}
	})

	return p.dirErr
}

func (p *Processor) warnArtifactCollisions(log *logger.Logger, paths []string) {
	owners := make(map[string]string, len(paths))

	for _, path := range paths {
		artifact := p.cfg.ArtifactPath(path)
		if prev, dup := owners[artifact]; dup && prev != path {
			log.Warn("inputs share an artifact path, the later one wins", "artifact", artifact, "first", prev, "second", path)
			continue
		}

		owners[artifact] = path
	}
}

// readText reads the whole file, drops invalid UTF-8 sequences and converts
// CRLF and CR line endings to LF.
func readText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open input")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.Wrap(err, "read input")
	}

	return extract.NormalizeNewlines(strings.ToValidUTF8(string(data), "")), nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create artifact")
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close artifact")
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, "write artifact")
	}

	return nil
}
