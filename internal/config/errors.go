package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than
// fmt.Errorf() because we don't need to include dynamic values in these
// messages.
var (
	// ErrNoInput is returned when no dump file is specified.
	ErrNoInput = errors.New("no input specified: provide at least one dump file")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent analyses, effectively
	// stopping the process.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxRecords is returned when the record cap is negative.
	// Use 0 for unlimited.
	ErrInvalidMaxRecords = errors.New("invalid max records: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidFormat is returned when the dump format is not one of
	// auto, colon, or hash.
	ErrInvalidFormat = errors.New("invalid dump format: must be auto, colon, or hash")
)
