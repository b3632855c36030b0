package correlate

import (
	"math"

	"github.com/nao1215/credscan/internal/model"
)

// Aggregator runs the classifier over a record set and accumulates the
// relation summary: related vs no-relation tallies, per-label counts,
// and bounded example lists.
//
// Classification is independent per record, so counts are
// order-independent; the retained examples are the first
// model.MaxExamplesPerRelation encountered per label and therefore
// follow input order.
type Aggregator struct {
	total      int
	noRelation int
	counts     map[model.Relation]int
	examples   map[string][]model.Record
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		counts:   make(map[model.Relation]int),
		examples: make(map[string][]model.Record),
	}
}

// Add classifies a record, folds it into the running tallies, and
// returns the classification for downstream consumers (CSV export).
func (a *Aggregator) Add(rec model.Record) model.Classification {
	flags, primary := Classify(rec)

	a.total++
	if primary == model.RelationNone {
		a.noRelation++
	} else {
		a.counts[primary]++
	}

	label := primary.String()
	if len(a.examples[label]) < model.MaxExamplesPerRelation {
		a.examples[label] = append(a.examples[label], rec)
	}

	return model.Classification{Record: rec, Primary: primary, Flags: flags}
}

// Summary builds the relation summary from the accumulated tallies.
// Safe to call on an empty aggregator: all counts and percentages are 0.
func (a *Aggregator) Summary() *model.RelationSummary {
	s := &model.RelationSummary{
		Total:      a.total,
		NoRelation: a.noRelation,
	}

	for rel, n := range a.counts {
		s.Related += n
		for i := 0; i < n; i++ {
			s.AddCount(rel)
		}
	}

	s.RelatedPct = percentage(s.Related, a.total)
	s.NoRelationPct = percentage(a.noRelation, a.total)

	if len(a.examples) > 0 {
		s.Examples = make(map[string][]model.Record, len(a.examples))
		for label, recs := range a.examples {
			s.Examples[label] = recs
		}
	}

	return s
}

// Aggregate classifies every record in the set and returns the
// per-record classifications in input order together with the summary.
// Convenience wrapper around Aggregator for single-pass callers.
func Aggregate(records []model.Record) ([]model.Classification, *model.RelationSummary) {
	agg := NewAggregator()
	classifications := make([]model.Classification, 0, len(records))
	for _, rec := range records {
		classifications = append(classifications, agg.Add(rec))
	}
	return classifications, agg.Summary()
}

// percentage returns n/total*100 rounded to two decimal places,
// or 0 when total is 0.
func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*100*100) / 100
}
