package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/credscan/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent
// markdown generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeCorrelation(md, report)
	w.writeEntropy(md, report)
	w.writeKeyboard(md, report)
	w.writeFooter(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Credscan Report")
	md.PlainText("")

	// Basic info table
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Analyzed", report.DateAnalyzed.Format("2006-01-02 15:04:05 MST")},
			{"Records", strconv.Itoa(report.TotalRecords)},
			{"Skipped Lines", strconv.Itoa(report.SkippedLines)},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.Report) string {
	if report.TimedOut {
		return "⚠️ Timed Out (partial results)"
	}
	if report.ErrorMessage != "" {
		return "❌ Error - " + report.ErrorMessage
	}
	return "✅ Complete"
}

// writeCorrelation writes the password/identity correlation section.
func (w *MarkdownWriter) writeCorrelation(md *markdown.Markdown, report *model.Report) {
	s := report.Relations
	if s == nil {
		return
	}

	md.H2("Correlation Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count", "Percent"},
		Rows: [][]string{
			{"Related", strconv.Itoa(s.Related), fmt.Sprintf("%.2f%%", s.RelatedPct)},
			{"No relation", strconv.Itoa(s.NoRelation), fmt.Sprintf("%.2f%%", s.NoRelationPct)},
			{"**Total**", "**" + strconv.Itoa(s.Total) + "**", ""},
		},
	})
	md.PlainText("")

	if s.Total > 0 {
		w.writePieChart(md, s)
	}

	w.writeBreakdown(md, s)
	w.writeAlert(md, s)
	w.writeExamples(md, s)
}

// writePieChart writes a mermaid pie chart of related vs unrelated
// passwords.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s *model.RelationSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Password/Identity Correlation"),
		piechart.WithShowData(true),
	)

	if s.Related > 0 {
		chart.LabelAndIntValue("related", uint64(s.Related))
	}
	if s.NoRelation > 0 {
		chart.LabelAndIntValue("no_relation", uint64(s.NoRelation))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeBreakdown writes the per-relation count table in priority order.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, s *model.RelationSummary) {
	md.H3("Breakdown by Relation")
	md.PlainText("")

	rows := make([][]string, 0, len(model.RelationPriority))
	for _, rel := range model.RelationPriority {
		rows = append(rows, []string{"`" + rel.String() + "`", strconv.Itoa(s.Count(rel))})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Relation", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the related share.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.RelationSummary) {
	switch {
	case s.RelatedPct >= 50:
		md.Cautionf(
			"%.2f%% of passwords are derived from the account's own identity. These accounts are trivially guessable.",
			s.RelatedPct,
		)
	case s.RelatedPct >= 20:
		md.Warningf(
			"%.2f%% of passwords correlate with the account's username or email.",
			s.RelatedPct,
		)
	case s.Related > 0:
		md.Importantf(
			"%d password(s) correlate with the account's identity.",
			s.Related,
		)
	default:
		md.Tip("No identity-derived passwords detected.")
	}
	md.PlainText("")
}

// writeExamples writes example records per relation label inside a
// collapsible details block, since the lists are long and sensitive.
func (w *MarkdownWriter) writeExamples(md *markdown.Markdown, s *model.RelationSummary) {
	if len(s.Examples) == 0 {
		return
	}

	for _, rel := range model.RelationPriority {
		examples := s.Examples[rel.String()]
		if len(examples) == 0 {
			continue
		}

		rows := make([][]string, 0, len(examples))
		for _, rec := range examples {
			rows = append(rows, []string{
				"`" + rec.Username + "`",
				"`" + rec.Email + "`",
				"`" + rec.Password + "`",
			})
		}

		md.Details(rel.String(), markdown.NewMarkdown(io.Discard).Table(markdown.TableSet{
			Header: []string{"Username", "Email", "Password"},
			Rows:   rows,
		}).String())
		md.PlainText("")
	}
}

// writeEntropy writes the entropy distribution section.
func (w *MarkdownWriter) writeEntropy(md *markdown.Markdown, report *model.Report) {
	s := report.Entropy
	if s == nil {
		return
	}

	md.H2("Password Entropy")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Bucket", "Count", "Percent"},
		Rows: [][]string{
			{"Low (< 2.0)", strconv.Itoa(s.LowCount), fmt.Sprintf("%.2f%%", s.LowPct)},
			{"Medium (2.0-4.0)", strconv.Itoa(s.MediumCount), fmt.Sprintf("%.2f%%", s.MediumPct)},
			{"High (>= 4.0)", strconv.Itoa(s.HighCount), fmt.Sprintf("%.2f%%", s.HighPct)},
		},
	})
	md.PlainText("")
	md.PlainTextf("Mean entropy **%.3f** bits/char, standard deviation **%.3f**, over %d passwords.",
		s.Mean, s.StdDev, s.Count)
	md.PlainText("")
}

// writeKeyboard writes the keyboard-pattern section.
func (w *MarkdownWriter) writeKeyboard(md *markdown.Markdown, report *model.Report) {
	s := report.Keyboard
	if s == nil {
		return
	}

	md.H2("Keyboard Patterns")
	md.PlainText("")

	md.PlainTextf("%d of %d passwords (%.2f%%) contain keyboard walks: %d horizontal, %d vertical, %d diagonal.",
		s.PatternCount, s.Total, s.PatternPct,
		s.HorizontalCount, s.VerticalCount, s.DiagonalCount)
	md.PlainText("")

	if len(s.TopSequences) > 0 {
		rows := make([][]string, 0, len(s.TopSequences))
		for _, seq := range s.TopSequences {
			rows = append(rows, []string{"`" + seq.Sequence + "`", strconv.Itoa(seq.Count)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Sequence", "Count"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, report *model.Report) {
	md.HorizontalRule()
	md.PlainTextf("Run ID: `%s`", report.RunID)
	md.PlainText("")
}
