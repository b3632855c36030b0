package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/credscan/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no results are shown.
	showEmpty bool

	// verbose enables example records in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with example records per relation.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeCorrelation(&sb, report)
	w.writeEntropy(&sb, report)
	w.writeKeyboard(&sb, report)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         CREDSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source:        %s\n", report.Source))
	sb.WriteString(fmt.Sprintf("Analyzed:      %s\n", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Records:       %d\n", report.TotalRecords))
	sb.WriteString(fmt.Sprintf("Skipped Lines: %d\n", report.SkippedLines))

	if report.TimedOut {
		sb.WriteString("Status:        TIMED OUT (partial results)\n")
	} else if report.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("Status:        ERROR - %s\n", report.ErrorMessage))
	} else {
		sb.WriteString("Status:        Complete\n")
	}

	sb.WriteString("\n")
}

// writeCorrelation writes the password/identity correlation section.
func (w *SimpleWriter) writeCorrelation(sb *strings.Builder, report *model.Report) {
	s := report.Relations
	if s == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CORRELATION SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Related:     %d (%.2f%%)\n", s.Related, s.RelatedPct))
	sb.WriteString(fmt.Sprintf("  No relation: %d (%.2f%%)\n", s.NoRelation, s.NoRelationPct))
	sb.WriteString("\n")

	sb.WriteString("  Breakdown by relation:\n")
	for _, rel := range model.RelationPriority {
		count := s.Count(rel)
		if count == 0 && !w.showEmpty {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %-26s %d\n", rel.String()+":", count))
	}
	sb.WriteString("\n")

	if w.verbose {
		w.writeExamples(sb, s)
	}
}

// writeExamples writes example records per relation label.
func (w *SimpleWriter) writeExamples(sb *strings.Builder, s *model.RelationSummary) {
	for _, rel := range model.RelationPriority {
		examples := s.Examples[rel.String()]
		if len(examples) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("  [%s]\n", rel.String()))
		for _, rec := range examples {
			sb.WriteString(fmt.Sprintf("    * user=%q email=%q password=%q\n",
				rec.Username, rec.Email, rec.Password))
		}
	}
	sb.WriteString("\n")
}

// writeEntropy writes the entropy distribution section.
func (w *SimpleWriter) writeEntropy(sb *strings.Builder, report *model.Report) {
	s := report.Entropy
	if s == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("PASSWORD ENTROPY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Passwords measured: %d\n", s.Count))
	sb.WriteString(fmt.Sprintf("  Mean entropy:       %.3f bits/char\n", s.Mean))
	sb.WriteString(fmt.Sprintf("  Std deviation:      %.3f\n", s.StdDev))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Low    (< 2.0):     %d (%.2f%%)\n", s.LowCount, s.LowPct))
	sb.WriteString(fmt.Sprintf("  Medium (2.0-4.0):   %d (%.2f%%)\n", s.MediumCount, s.MediumPct))
	sb.WriteString(fmt.Sprintf("  High   (>= 4.0):    %d (%.2f%%)\n", s.HighCount, s.HighPct))
	sb.WriteString("\n")

	if w.verbose && len(s.TopPasswords) > 0 {
		sb.WriteString("  Highest-entropy passwords:\n")
		for _, p := range s.TopPasswords {
			sb.WriteString(fmt.Sprintf("    %.3f  %s\n", p.Entropy, p.Password))
		}
		sb.WriteString("\n")
	}
}

// writeKeyboard writes the keyboard-pattern section.
func (w *SimpleWriter) writeKeyboard(sb *strings.Builder, report *model.Report) {
	s := report.Keyboard
	if s == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("KEYBOARD PATTERNS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Keyboard walks: %d of %d (%.2f%%)\n", s.PatternCount, s.Total, s.PatternPct))
	sb.WriteString(fmt.Sprintf("    Horizontal:   %d\n", s.HorizontalCount))
	sb.WriteString(fmt.Sprintf("    Vertical:     %d\n", s.VerticalCount))
	sb.WriteString(fmt.Sprintf("    Diagonal:     %d\n", s.DiagonalCount))
	sb.WriteString("\n")

	if len(s.TopSequences) > 0 {
		sb.WriteString("  Most frequent sequences:\n")
		for _, seq := range s.TopSequences {
			sb.WriteString(fmt.Sprintf("    %-12s %d\n", seq.Sequence, seq.Count))
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Run ID: %s\n", report.RunID))
	if len(report.PerformedAnalyses) > 0 {
		sb.WriteString(fmt.Sprintf("Analyses: %s\n", strings.Join(report.PerformedAnalyses, ", ")))
	}
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
