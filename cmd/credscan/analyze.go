package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/credscan/internal/config"
	"github.com/nao1215/credscan/internal/database"
	"github.com/nao1215/credscan/internal/log"
	"github.com/nao1215/credscan/internal/model"
	"github.com/nao1215/credscan/internal/parser"
	"github.com/nao1215/credscan/internal/pipeline"
	"github.com/nao1215/credscan/internal/report"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [dump-file...]",
		Short: "Analyze credential dumps for identity-derived passwords",
		Long: `Analyze parses one or more credential dump files and classifies each
record's password against its own username and email.

Detected relations, in priority order:
- exact match of username or email
- password containing the username or email local-part
- password containing a username/email token (3+ characters)
- leet-speak obfuscated username or token (p4ssw0rd -> password)
- reversed username

The correlation analysis is supplemented with Shannon-entropy and
keyboard-walk statistics over the full password set.

Examples:
  # Analyze a single dump
  credscan analyze dump.txt

  # Analyze multiple dumps concurrently
  credscan analyze dump1.txt dump2.txt dump3.txt

  # CSDN-style hash-delimited dump in GBK encoding
  credscan analyze --format hash --charset gbk csdn.txt

  # Output JSON report and export related records as CSV
  credscan analyze --json --csv matches.csv dump.txt

  # Use a custom configuration file
  credscan analyze -c myconfig.yaml dump.txt

Configuration file (.credscan) example:
  sources:
    csdn.txt:
      format: hash
      charset: gbk
      label: "CSDN 2011"`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Parsing flags
	cmd.Flags().StringP("format", "F", config.DefaultFormat,
		"Dump line layout: auto, colon, or hash")
	cmd.Flags().String("charset", "",
		"Dump source encoding: utf-8, gbk, gb18030, or latin-1")
	cmd.Flags().Int("max-records", 0,
		"Maximum records to read per dump (0 = unlimited)")

	// Batch analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent dump analyses")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .credscan in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("csv", "",
		"Export related records as CSV to specified file path")

	// Persistence flags
	cmd.Flags().Bool("no-save", false,
		"Do not save results to the result database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging. The secure logger masks passwords and
	// raw dump lines, which this tool handles constantly.
	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.Charset, err = cmd.Flags().GetString("charset")
	if err != nil {
		return nil, err
	}

	cfg.MaxRecords, err = cmd.Flags().GetInt("max-records")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-dump configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SourceConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.SourceConfigs = &config.File{
			Sources: make(map[string]config.SourceConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.CSVFile, err = cmd.Flags().GetString("csv")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}

	// Save to database using XDG data directory unless disabled
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (dump file paths)
	cfg.Inputs = args

	return cfg, nil
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"inputs", len(cfg.Inputs),
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.ResultDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close() //nolint:errcheck // Best effort cleanup
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Verify all input files exist before starting any analysis
	for _, input := range cfg.Inputs {
		if _, err := os.Stat(input); err != nil {
			return fmt.Errorf("cannot read dump file %q: %w", input, err)
		}
	}

	// Use batch processor for parallel analysis if multiple inputs
	if len(cfg.Inputs) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalyze(ctx, cfg, db, logger)
	}

	// Single input or sequential analysis
	return runSequentialAnalyze(ctx, cfg, db, logger)
}

// runSequentialAnalyze analyzes dumps one at a time.
func runSequentialAnalyze(ctx context.Context, cfg *config.Config, db *database.ResultDB, logger *slog.Logger) error {
	for _, input := range cfg.Inputs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p, err := createPipelineForDump(cfg, logger, input)
		if err != nil {
			return err
		}

		analysisReport := model.NewReport(sourceLabel(cfg, input))

		fmt.Printf("Analyzing %s...\n", input)
		startTime := time.Now()

		// Execute the pipeline
		if err := p.Execute(ctx, analysisReport); err != nil {
			logger.Error("analysis failed", "source", input, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", input, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Analysis completed in %s\n\n", elapsed.Round(time.Millisecond))

		// Generate and output report
		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "source", input, "error", err)
		}

		// Save to database if enabled
		if err := saveReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save report", "source", input, "error", err)
		}
	}

	return nil
}

// runBatchAnalyze analyzes multiple dumps concurrently using BatchProcessor.
func runBatchAnalyze(ctx context.Context, cfg *config.Config, db *database.ResultDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d dumps (concurrency: %d)...\n\n",
		len(cfg.Inputs), cfg.BatchSize)

	startTime := time.Now()

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func(path string) *pipeline.Pipeline {
			p, err := createPipelineForDump(cfg, logger, path)
			if err != nil {
				// Input validity was checked up front; reaching here means
				// the config names an unsupported format for this dump.
				logger.Error("pipeline creation failed", "source", path, "error", err)
				return pipeline.New(pipeline.WithLogger(logger))
			}
			return p
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, cfg.Inputs, func(analysisReport *model.Report, index int) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Printf("[%d/%d] Analysis completed: %s\n", index+1, len(cfg.Inputs), analysisReport.Source)

		// Generate and output report
		if err := outputReport(cfg, analysisReport); err != nil {
			logger.Error("report failed", "source", analysisReport.Source, "error", err)
		}

		// Save to database if enabled
		if err := saveReport(ctx, db, analysisReport, logger); err != nil {
			logger.Error("failed to save report", "source", analysisReport.Source, "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// sourceLabel returns the display name for a dump: the configured label
// if present, otherwise the file base name.
func sourceLabel(cfg *config.Config, path string) string {
	if cfg.SourceConfigs != nil {
		if sc := cfg.SourceConfigs.GetSourceConfig(filepath.Base(path)); sc.Label != "" {
			return sc.Label
		}
	}
	return filepath.Base(path)
}

// createPipelineForDump creates a pipeline for one dump file, merging
// global flags with per-dump configuration (per-dump wins).
func createPipelineForDump(cfg *config.Config, logger *slog.Logger, path string) (*pipeline.Pipeline, error) {
	formatName := cfg.Format
	charset := cfg.Charset

	if cfg.SourceConfigs != nil {
		sc := cfg.SourceConfigs.GetSourceConfig(filepath.Base(path))
		if sc.Format != "" {
			formatName = sc.Format
		}
		if sc.Charset != "" {
			charset = sc.Charset
		}
	}

	format, err := parser.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	return pipeline.DefaultPipeline(path,
		pipeline.WithPipelineFormat(format),
		pipeline.WithPipelineCharset(charset),
		pipeline.WithPipelineMaxRecords(cfg.MaxRecords),
		pipeline.WithPipelineContinueOnError(true),
		pipeline.WithPipelineLogger(logger),
	), nil
}

// outputReport outputs the analysis report in the requested format and
// writes the CSV export if configured.
func outputReport(cfg *config.Config, analysisReport *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600).
		// Reports contain leaked credentials and must only be readable by
		// the owner.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Best effort cleanup
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	if _, err := writer.Write(analysisReport); err != nil {
		return err
	}

	// CSV export of related records
	if cfg.CSVFile != "" {
		if err := exportCSV(cfg.CSVFile, analysisReport); err != nil {
			return err
		}
	}

	return nil
}

// exportCSV writes the related-records CSV export.
func exportCSV(path string, analysisReport *model.Report) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create CSV directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Best effort cleanup

	rows, err := report.NewCSVWriter(f).Write(analysisReport)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d related record(s) to %s\n", rows, path)
	return nil
}

// saveReport saves the analysis report to the database if enabled.
// If db is nil, this function is a no-op.
func saveReport(ctx context.Context, db *database.ResultDB, analysisReport *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveReport(ctx, analysisReport); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	logger.Info("report saved to database", "source", analysisReport.Source)
	return nil
}
