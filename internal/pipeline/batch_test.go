package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nao1215/credscan/internal/model"
)

// TestBatchProcessor tests concurrent analysis of multiple dumps.
func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("processes all dumps and keeps order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := make([]string, 3)
		contents := []string{
			"bob:bob123\n",
			"carol:carol99\njane:xk9mq2v\n",
			"dave:dave\n",
		}
		for i, content := range contents {
			paths[i] = filepath.Join(dir, "dump"+string(rune('a'+i))+".txt")
			if err := os.WriteFile(paths[i], []byte(content), 0600); err != nil {
				t.Fatalf("write dump: %v", err)
			}
		}

		bp := NewBatchProcessor(
			func(path string) *Pipeline {
				return DefaultPipeline(path)
			},
			WithConcurrency(2),
		)

		reports, err := bp.ProcessBatch(context.Background(), paths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(reports) != 3 {
			t.Fatalf("expected 3 reports, got %d", len(reports))
		}
		wantRecords := []int{1, 2, 1}
		for i, r := range reports {
			if r == nil {
				t.Fatalf("report %d is nil", i)
			}
			if r.Source != paths[i] {
				t.Errorf("report %d source = %q, want %q", i, r.Source, paths[i])
			}
			if r.TotalRecords != wantRecords[i] {
				t.Errorf("report %d records = %d, want %d", i, r.TotalRecords, wantRecords[i])
			}
		}
	})

	t.Run("records failure in report without aborting batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		good := filepath.Join(dir, "good.txt")
		if err := os.WriteFile(good, []byte("bob:bob123\n"), 0600); err != nil {
			t.Fatalf("write dump: %v", err)
		}
		missing := filepath.Join(dir, "missing.txt")

		bp := NewBatchProcessor(func(path string) *Pipeline {
			return DefaultPipeline(path)
		})

		reports, err := bp.ProcessBatch(context.Background(), []string{good, missing})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if reports[0].ErrorMessage != "" {
			t.Errorf("good dump error = %q", reports[0].ErrorMessage)
		}
		if reports[1].ErrorMessage == "" {
			t.Error("expected error recorded for missing dump")
		}
	})

	t.Run("callback receives every report", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := make([]string, 4)
		for i := range paths {
			paths[i] = filepath.Join(dir, "dump"+string(rune('0'+i))+".txt")
			if err := os.WriteFile(paths[i], []byte("user:pass\n"), 0600); err != nil {
				t.Fatalf("write dump: %v", err)
			}
		}

		bp := NewBatchProcessor(func(path string) *Pipeline {
			return DefaultPipeline(path)
		}, WithConcurrency(2))

		var mu sync.Mutex
		seen := make(map[int]bool)
		err := bp.ProcessBatchWithCallback(context.Background(), paths,
			func(_ *model.Report, index int) {
				mu.Lock()
				defer mu.Unlock()
				seen[index] = true
			})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(seen) != 4 {
			t.Errorf("callback saw %d reports, want 4", len(seen))
		}
	})
}
