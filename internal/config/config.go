package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "credscan"

	// DefaultBatchSize of 4 concurrent dump analyses balances throughput
	// with memory usage. Each dump is loaded fully into memory, so high
	// concurrency on large dumps can exhaust RAM.
	DefaultBatchSize = 4

	// DefaultFormat is the dump line layout used when none is specified.
	// Auto-detection handles the common layouts; a forced layout is only
	// needed for ambiguous dumps.
	DefaultFormat = "auto"
)

// Config holds all configuration options for credscan.
// This struct is designed to be populated from CLI flags and passed
// through the application via dependency injection rather than global
// state.
//
// Design decision: We use a single flat struct instead of nested
// structs for simplicity. The number of options is manageable, and
// nesting would add complexity without significant benefit.
type Config struct {
	// Format is the dump line layout: "auto", "colon", or "hash".
	Format string

	// Charset is the dump's source encoding, e.g. "gbk" for CSDN-era
	// Chinese dumps. Empty means UTF-8.
	Charset string

	// BatchSize is the number of concurrent analyses when processing
	// multiple dump files.
	BatchSize int

	// MaxRecords caps how many records are read per dump.
	// Zero means unlimited.
	MaxRecords int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .credscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SourceConfigs holds per-dump configurations loaded from the config
	// file. This is populated by LoadConfigFile and used during analysis.
	SourceConfigs *File

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// CSVFile is the output file path for the related-records CSV
	// export. When empty, no CSV is written.
	CSVFile string

	// Verbose enables detailed log output using slog.LevelDebug and
	// example records in the text report. When false, only warnings and
	// errors are logged.
	Verbose bool

	// DBDir is the directory path for storing the SQLite database.
	// When set, analysis results are saved for historical comparison.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to save analysis results to the
	// database. This is automatically set to true when DBDir is
	// configured.
	SaveToDB bool

	// Inputs is the list of dump files to analyze.
	// Must contain at least one path.
	Inputs []string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves
// as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:    DefaultFormat,
		BatchSize: DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for credscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/credscan
// On macOS: ~/Library/Application Support/credscan
// On Windows: %LOCALAPPDATA%\credscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for credscan.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/credscan
// On macOS: ~/Library/Application Support/credscan
// On Windows: %APPDATA%\credscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one dump to analyze
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	// BatchSize must be positive; zero would mean no analysis
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// MaxRecords must be non-negative; 0 means unlimited
	if c.MaxRecords < 0 {
		return ErrInvalidMaxRecords
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	switch c.Format {
	case "", "auto", "colon", "hash":
	default:
		return ErrInvalidFormat
	}

	return nil
}
