package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/credscan/internal/model"
	"github.com/nao1215/credscan/internal/parser"
)

// writeDump writes a dump file into a temp directory and returns its path.
func writeDump(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dump.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write dump: %v", err)
	}
	return path
}

// TestParseStep tests dump file parsing.
func TestParseStep(t *testing.T) {
	t.Parallel()

	t.Run("parses records and counts skipped lines", func(t *testing.T) {
		t.Parallel()

		path := writeDump(t, "john:secret\n\njane:qwerty\n")
		step := NewParseStep(path)

		report := model.NewReport(path)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.TotalRecords != 2 {
			t.Errorf("TotalRecords = %d, want 2", report.TotalRecords)
		}
		if report.SkippedLines != 1 {
			t.Errorf("SkippedLines = %d, want 1", report.SkippedLines)
		}
	})

	t.Run("caps records at max", func(t *testing.T) {
		t.Parallel()

		path := writeDump(t, "a:1\nb:2\nc:3\nd:4\n")
		step := NewParseStep(path, WithParseMaxRecords(2))

		report := model.NewReport(path)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.TotalRecords != 2 {
			t.Errorf("TotalRecords = %d, want 2", report.TotalRecords)
		}
	})

	t.Run("forced format", func(t *testing.T) {
		t.Parallel()

		path := writeDump(t, "user # pass # user@example.com\n")
		step := NewParseStep(path, WithParseFormat(parser.FormatHash))

		report := model.NewReport(path)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.TotalRecords != 1 {
			t.Fatalf("TotalRecords = %d, want 1", report.TotalRecords)
		}
		if report.Records[0].Email != "user@example.com" {
			t.Errorf("email = %q", report.Records[0].Email)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		t.Parallel()

		step := NewParseStep(filepath.Join(t.TempDir(), "missing.txt"))
		report := model.NewReport("missing.txt")
		if err := step.Do(context.Background(), report); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

// TestAnalysisSteps tests the correlate, entropy, and keyboard steps
// over a shared record set.
func TestAnalysisSteps(t *testing.T) {
	t.Parallel()

	report := model.NewReport("dump.txt")
	report.Records = []model.Record{
		{Username: "bob", Password: "bobzzz"},
		{Username: "carol", Password: "qwerty"},
		{Username: "dave", Password: "unrelated"},
	}

	if err := NewCorrelateStep().Do(context.Background(), report); err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if err := NewEntropyStep().Do(context.Background(), report); err != nil {
		t.Fatalf("entropy: %v", err)
	}
	if err := NewKeyboardStep().Do(context.Background(), report); err != nil {
		t.Fatalf("keyboard: %v", err)
	}

	if report.Relations == nil || report.Relations.Related != 1 {
		t.Errorf("Relations = %+v, want 1 related", report.Relations)
	}
	if len(report.Classifications) != 3 {
		t.Errorf("Classifications = %d, want 3", len(report.Classifications))
	}
	if report.Entropy == nil || report.Entropy.Count != 3 {
		t.Errorf("Entropy = %+v, want 3 measured", report.Entropy)
	}
	if report.Keyboard == nil || report.Keyboard.PatternCount != 1 {
		t.Errorf("Keyboard = %+v, want 1 pattern", report.Keyboard)
	}
}

// TestDefaultPipelineEndToEnd runs the full pipeline over a real file.
func TestDefaultPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	path := writeDump(t, "bob:bob123\ncarol:lorac1\ndave:xyz789\n")

	p := DefaultPipeline(path)
	report := model.NewReport(path)

	if err := p.Execute(context.Background(), report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", report.TotalRecords)
	}
	if report.Relations.RelatedPct != 66.67 {
		t.Errorf("RelatedPct = %v, want 66.67", report.Relations.RelatedPct)
	}
	if len(report.PerformedAnalyses) != 4 {
		t.Errorf("PerformedAnalyses = %v", report.PerformedAnalyses)
	}
}
