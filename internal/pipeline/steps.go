package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/credscan/internal/correlate"
	"github.com/nao1215/credscan/internal/model"
	"github.com/nao1215/credscan/internal/parser"
	"github.com/nao1215/credscan/internal/stats"
)

// ParseStep reads a credential dump file into the report's record set.
// This step is the foundation of every analysis: all subsequent steps
// operate on the records it produces.
type ParseStep struct {
	// path is the dump file to read.
	path string

	// format forces a specific line layout; FormatAuto by default.
	format parser.Format

	// charset names the dump's source encoding; empty means UTF-8.
	charset string

	// maxRecords caps how many records are read; 0 means unlimited.
	maxRecords int

	// logger for structured logging.
	logger *slog.Logger
}

// ParseStepOption configures a ParseStep.
type ParseStepOption func(*ParseStep)

// WithParseFormat forces a specific dump line layout.
func WithParseFormat(format parser.Format) ParseStepOption {
	return func(s *ParseStep) {
		s.format = format
	}
}

// WithParseCharset sets the dump's source encoding.
func WithParseCharset(charset string) ParseStepOption {
	return func(s *ParseStep) {
		s.charset = charset
	}
}

// WithParseMaxRecords caps the number of records read from the dump.
func WithParseMaxRecords(n int) ParseStepOption {
	return func(s *ParseStep) {
		s.maxRecords = n
	}
}

// WithParseLogger sets a custom logger for the parse step.
func WithParseLogger(logger *slog.Logger) ParseStepOption {
	return func(s *ParseStep) {
		s.logger = logger
	}
}

// NewParseStep creates a new dump parsing step for the given file.
func NewParseStep(path string, opts ...ParseStepOption) *ParseStep {
	s := &ParseStep{
		path:   path,
		format: parser.FormatAuto,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parse step.
func (s *ParseStep) Do(ctx context.Context, report *model.Report) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open dump file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	r, err := parser.NewDecodingReader(f, s.charset)
	if err != nil {
		return err
	}

	records, skipped, err := parser.New(s.path, parser.WithFormat(s.format)).Parse(r)
	if err != nil {
		return err
	}
	if s.maxRecords > 0 && len(records) > s.maxRecords {
		records = records[:s.maxRecords]
	}

	report.Records = records
	report.TotalRecords = len(records)
	report.SkippedLines = skipped

	s.logger.Debug("dump parsed",
		"source", s.path,
		"records", len(records),
		"skipped", skipped,
	)
	return nil
}

// CorrelateStep classifies every record's password against its own
// identity fields and builds the relation summary. This is the core
// analysis the tool exists for.
type CorrelateStep struct {
	logger *slog.Logger
}

// CorrelateStepOption configures a CorrelateStep.
type CorrelateStepOption func(*CorrelateStep)

// WithCorrelateLogger sets a custom logger for the correlate step.
func WithCorrelateLogger(logger *slog.Logger) CorrelateStepOption {
	return func(s *CorrelateStep) {
		s.logger = logger
	}
}

// NewCorrelateStep creates a new correlation step.
func NewCorrelateStep(opts ...CorrelateStepOption) *CorrelateStep {
	s := &CorrelateStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CorrelateStep) Name() string {
	return "correlate"
}

// Do executes the correlation step.
func (s *CorrelateStep) Do(_ context.Context, report *model.Report) error {
	classifications, summary := correlate.Aggregate(report.Records)
	report.Classifications = classifications
	report.Relations = summary

	s.logger.Debug("correlation complete",
		"source", report.Source,
		"related", summary.Related,
		"no_relation", summary.NoRelation,
	)
	return nil
}

// EntropyStep computes the Shannon-entropy distribution of the parsed
// passwords.
type EntropyStep struct {
	logger *slog.Logger
}

// EntropyStepOption configures an EntropyStep.
type EntropyStepOption func(*EntropyStep)

// WithEntropyLogger sets a custom logger for the entropy step.
func WithEntropyLogger(logger *slog.Logger) EntropyStepOption {
	return func(s *EntropyStep) {
		s.logger = logger
	}
}

// NewEntropyStep creates a new entropy analysis step.
func NewEntropyStep(opts ...EntropyStepOption) *EntropyStep {
	s := &EntropyStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *EntropyStep) Name() string {
	return "entropy"
}

// Do executes the entropy step.
func (s *EntropyStep) Do(_ context.Context, report *model.Report) error {
	report.Entropy = stats.AnalyzeEntropy(report.Records)

	s.logger.Debug("entropy analysis complete",
		"source", report.Source,
		"mean", report.Entropy.Mean,
	)
	return nil
}

// KeyboardStep detects keyboard-walk patterns in the parsed passwords.
type KeyboardStep struct {
	logger *slog.Logger
}

// KeyboardStepOption configures a KeyboardStep.
type KeyboardStepOption func(*KeyboardStep)

// WithKeyboardLogger sets a custom logger for the keyboard step.
func WithKeyboardLogger(logger *slog.Logger) KeyboardStepOption {
	return func(s *KeyboardStep) {
		s.logger = logger
	}
}

// NewKeyboardStep creates a new keyboard-pattern detection step.
func NewKeyboardStep(opts ...KeyboardStepOption) *KeyboardStep {
	s := &KeyboardStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *KeyboardStep) Name() string {
	return "keyboard"
}

// Do executes the keyboard step.
func (s *KeyboardStep) Do(_ context.Context, report *model.Report) error {
	report.Keyboard = stats.AnalyzeKeyboard(report.Records)

	s.logger.Debug("keyboard analysis complete",
		"source", report.Source,
		"pattern_count", report.Keyboard.PatternCount,
	)
	return nil
}

// DefaultPipeline builds the standard analysis pipeline for one dump
// file: parse, correlate, entropy, keyboard. Pipeline options apply to
// the pipeline itself; step behavior is configured via the
// WithPipeline* options.
func DefaultPipeline(path string, opts ...DefaultOption) *Pipeline {
	cfg := defaultConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	p := New(
		WithLogger(logger),
		WithContinueOnError(cfg.continueOnError),
	)
	p.AddSteps(
		NewParseStep(path,
			WithParseFormat(cfg.format),
			WithParseCharset(cfg.charset),
			WithParseMaxRecords(cfg.maxRecords),
			WithParseLogger(logger),
		),
		NewCorrelateStep(WithCorrelateLogger(logger)),
		NewEntropyStep(WithEntropyLogger(logger)),
		NewKeyboardStep(WithKeyboardLogger(logger)),
	)
	return p
}

// defaultConfig collects the knobs DefaultPipeline threads through to
// its steps.
type defaultConfig struct {
	format          parser.Format
	charset         string
	maxRecords      int
	continueOnError bool
	logger          *slog.Logger
}

// DefaultOption configures DefaultPipeline.
type DefaultOption func(*defaultConfig)

// WithPipelineFormat forces the dump line layout for the parse step.
func WithPipelineFormat(format parser.Format) DefaultOption {
	return func(c *defaultConfig) {
		c.format = format
	}
}

// WithPipelineCharset sets the dump's source encoding for the parse step.
func WithPipelineCharset(charset string) DefaultOption {
	return func(c *defaultConfig) {
		c.charset = charset
	}
}

// WithPipelineMaxRecords caps how many records the parse step reads.
func WithPipelineMaxRecords(n int) DefaultOption {
	return func(c *defaultConfig) {
		c.maxRecords = n
	}
}

// WithPipelineContinueOnError lets later analyses run even when an
// earlier one fails.
func WithPipelineContinueOnError(continueOnError bool) DefaultOption {
	return func(c *defaultConfig) {
		c.continueOnError = continueOnError
	}
}

// WithPipelineLogger sets the logger shared by the pipeline and its steps.
func WithPipelineLogger(logger *slog.Logger) DefaultOption {
	return func(c *defaultConfig) {
		c.logger = logger
	}
}
