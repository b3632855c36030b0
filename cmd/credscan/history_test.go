package main

import (
	"testing"
)

// TestNewHistoryCmd tests the history command definition.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	for _, flag := range []string{"list-sources", "limit", "json"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("missing flag %q", flag)
		}
	}

	if err := cmd.Args(cmd, []string{"a.txt", "b.txt"}); err == nil {
		t.Error("expected error for more than one source argument")
	}
	if err := cmd.Args(cmd, []string{"a.txt"}); err != nil {
		t.Errorf("unexpected error for single source: %v", err)
	}
}
