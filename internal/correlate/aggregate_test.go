package correlate

import (
	"fmt"
	"testing"

	"github.com/nao1215/credscan/internal/model"
)

// TestAggregateEndToEnd runs the full classify-and-tally path over a
// small record set and checks every summary field.
func TestAggregateEndToEnd(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{Username: "bob", Email: "bob@example.com", Password: "bob123"},
		{Username: "carol", Email: "carol@example.com", Password: "lorac1"},
		{Username: "dave", Email: "dave@example.com", Password: "xyz789"},
	}

	classifications, summary := Aggregate(records)

	if len(classifications) != 3 {
		t.Fatalf("expected 3 classifications, got %d", len(classifications))
	}
	if classifications[0].Primary != model.RelationContainsUsername {
		t.Errorf("bob primary = %s, want contains_username", classifications[0].Primary)
	}
	if classifications[1].Primary != model.RelationReversedUsername {
		t.Errorf("carol primary = %s, want reversed_username", classifications[1].Primary)
	}
	if classifications[2].Primary != model.RelationNone {
		t.Errorf("dave primary = %s, want no_relation", classifications[2].Primary)
	}

	if summary.Total != 3 {
		t.Errorf("Total = %d, want 3", summary.Total)
	}
	if summary.Related != 2 {
		t.Errorf("Related = %d, want 2", summary.Related)
	}
	if summary.NoRelation != 1 {
		t.Errorf("NoRelation = %d, want 1", summary.NoRelation)
	}
	if summary.RelatedPct != 66.67 {
		t.Errorf("RelatedPct = %v, want 66.67", summary.RelatedPct)
	}
	if summary.NoRelationPct != 33.33 {
		t.Errorf("NoRelationPct = %v, want 33.33", summary.NoRelationPct)
	}
	if summary.ContainsUsernameCount != 1 {
		t.Errorf("ContainsUsernameCount = %d, want 1", summary.ContainsUsernameCount)
	}
	if summary.ReversedUsernameCount != 1 {
		t.Errorf("ReversedUsernameCount = %d, want 1", summary.ReversedUsernameCount)
	}
}

// TestAggregateInvariants verifies that related plus no-relation always
// equals total and per-label counts sum to related.
func TestAggregateInvariants(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{Username: "john", Password: "john"},
		{Username: "anna", Email: "anna@example.com", Password: "annaexamplecom"},
		{Username: "kate", Password: "kate99"},
		{Username: "paul", Email: "mike@example.com", Password: "mike1"},
		{Username: "lisa.marie", Password: "xmarie"},
		{Username: "sam", Password: "$@m123"},
		{Username: "x.todd", Password: "7odd00"},
		{Username: "alice", Password: "ecila!"},
		{Username: "zed", Password: "unrelated"},
		{Username: "", Password: "orphan"},
	}

	_, summary := Aggregate(records)

	if summary.Related+summary.NoRelation != summary.Total {
		t.Errorf("Related(%d) + NoRelation(%d) != Total(%d)",
			summary.Related, summary.NoRelation, summary.Total)
	}

	labelSum := 0
	for _, rel := range model.RelationPriority {
		labelSum += summary.Count(rel)
	}
	if labelSum != summary.Related {
		t.Errorf("per-label counts sum to %d, want Related = %d", labelSum, summary.Related)
	}

	// Every relation in the priority order should have fired exactly once
	// for the first eight records.
	for _, rel := range model.RelationPriority {
		if got := summary.Count(rel); got != 1 {
			t.Errorf("Count(%s) = %d, want 1", rel, got)
		}
	}
}

// TestAggregatorExampleCap verifies the bounded example lists.
func TestAggregatorExampleCap(t *testing.T) {
	t.Parallel()

	agg := NewAggregator()
	for i := 0; i < 25; i++ {
		agg.Add(model.Record{
			Username: "john",
			Password: fmt.Sprintf("john%04d", i),
		})
	}

	summary := agg.Summary()

	if summary.ContainsUsernameCount != 25 {
		t.Errorf("ContainsUsernameCount = %d, want 25 (counts must stay exact)", summary.ContainsUsernameCount)
	}

	examples := summary.Examples[model.RelationContainsUsername.String()]
	if len(examples) != model.MaxExamplesPerRelation {
		t.Fatalf("examples = %d, want %d", len(examples), model.MaxExamplesPerRelation)
	}

	// First-encountered order is retained.
	if examples[0].Password != "john0000" {
		t.Errorf("first example password = %q, want john0000", examples[0].Password)
	}
	if examples[9].Password != "john0009" {
		t.Errorf("last example password = %q, want john0009", examples[9].Password)
	}
}

// TestAggregateEmpty verifies the all-zero summary for an empty set.
func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	classifications, summary := Aggregate(nil)

	if len(classifications) != 0 {
		t.Errorf("expected no classifications, got %d", len(classifications))
	}
	if summary.Total != 0 || summary.Related != 0 || summary.NoRelation != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	if summary.RelatedPct != 0 || summary.NoRelationPct != 0 {
		t.Errorf("expected zero percentages, got related=%v none=%v",
			summary.RelatedPct, summary.NoRelationPct)
	}
}
