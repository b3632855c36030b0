package model

import (
	"time"

	"github.com/google/uuid"
)

// Report is the terminal artifact of one analysis run over a single dump
// file. It carries the parsed records, per-record classifications, and
// the aggregate summaries handed to the report writers and the result
// database.
//
// Design decision: We use a single struct per run rather than separate
// artifacts per analysis to simplify serialization and database storage.
// Bulky per-record data is excluded from JSON; only summaries and run
// metadata are persisted.
type Report struct {
	// RunID uniquely identifies this analysis run.
	RunID string `json:"run_id"`

	// Source identifies the analyzed dump (file base name, or a label
	// from the configuration file).
	Source string `json:"source"`

	// DateAnalyzed is when the analysis was performed.
	DateAnalyzed time.Time `json:"date_analyzed"`

	// TotalRecords is the number of records parsed from the dump.
	TotalRecords int `json:"total_records"`

	// SkippedLines counts input lines that yielded no record
	// (blank or malformed).
	SkippedLines int `json:"skipped_lines"`

	// Records holds the parsed credential records.
	// Excluded from JSON due to size and sensitivity.
	Records []Record `json:"-"`

	// Classifications holds the per-record correlation results, one per
	// record, in input order. Excluded from JSON due to size; the CSV
	// export consumes it directly.
	Classifications []Classification `json:"-"`

	// === Aggregate summaries ===

	// Relations is the password/identity correlation summary.
	Relations *RelationSummary `json:"relation_summary,omitempty"`

	// Entropy is the Shannon-entropy summary.
	Entropy *EntropySummary `json:"entropy_summary,omitempty"`

	// Keyboard is the keyboard-walk summary.
	Keyboard *KeyboardSummary `json:"keyboard_summary,omitempty"`

	// === Run state ===

	// PerformedAnalyses lists the pipeline steps that actually ran.
	PerformedAnalyses []string `json:"performed_analyses,omitempty"`

	// TimedOut is true if the run was cancelled before completing.
	TimedOut bool `json:"timed_out"`

	// Error contains any error that occurred during the run.
	// Only set if the run failed or partially failed.
	Error error `json:"-"` // Excluded from JSON

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewReport creates a new report for the given dump source with a fresh
// run ID.
func NewReport(source string) *Report {
	return &Report{
		RunID:        uuid.NewString(),
		Source:       source,
		DateAnalyzed: time.Now(),
	}
}

// RelatedClassifications returns the classifications whose primary
// relation is not no_relation, in input order. This is the row set of
// the CSV matches export.
func (r *Report) RelatedClassifications() []Classification {
	var related []Classification
	for _, c := range r.Classifications {
		if c.Primary.IsRelated() {
			related = append(related, c)
		}
	}
	return related
}
