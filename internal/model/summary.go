package model

// MaxExamplesPerRelation caps how many example records are retained per
// relation label in a summary. The cap keeps the summary bounded
// regardless of dump size; counts remain exact.
const MaxExamplesPerRelation = 10

// RelationSummary aggregates classification results over a record set.
//
// Invariants: Related + NoRelation == Total, and the eight per-label
// counts sum to Related. Percentages are 0 when Total is 0.
//
// Design decision: Per-label counts are explicit fields rather than a
// map keyed by Relation so the JSON stored in the result database stays
// flat and self-describing.
type RelationSummary struct {
	// Total is the number of records classified.
	Total int `json:"total"`

	// Related counts records whose primary relation is not no_relation.
	Related int `json:"related"`

	// NoRelation counts records with no detectable relation.
	NoRelation int `json:"no_relation"`

	// RelatedPct and NoRelationPct are percentages of Total, rounded to
	// two decimal places.
	RelatedPct    float64 `json:"related_pct"`
	NoRelationPct float64 `json:"no_relation_pct"`

	// === Per-label counts, in priority order ===

	ExactUsernameCount     int `json:"exact_username_count"`
	ExactEmailCount        int `json:"exact_email_count"`
	ContainsUsernameCount  int `json:"contains_username_count"`
	ContainsLocalPartCount int `json:"contains_localpart_count"`
	ContainsTokenCount     int `json:"contains_token_count"`
	DeleetUsernameCount    int `json:"deleet_contains_username_count"`
	DeleetTokenCount       int `json:"deleet_contains_token_count"`
	ReversedUsernameCount  int `json:"reversed_username_count"`

	// Examples holds up to MaxExamplesPerRelation records per relation
	// label (including no_relation), in first-encountered order. Counts
	// are order-independent; examples are not.
	Examples map[string][]Record `json:"examples,omitempty"`
}

// Count returns the tally for a labeled relation. RelationNone returns
// the no-relation tally.
func (s *RelationSummary) Count(rel Relation) int {
	switch rel {
	case RelationExactUsername:
		return s.ExactUsernameCount
	case RelationExactEmail:
		return s.ExactEmailCount
	case RelationContainsUsername:
		return s.ContainsUsernameCount
	case RelationContainsLocalPart:
		return s.ContainsLocalPartCount
	case RelationContainsToken:
		return s.ContainsTokenCount
	case RelationDeleetUsername:
		return s.DeleetUsernameCount
	case RelationDeleetToken:
		return s.DeleetTokenCount
	case RelationReversedUsername:
		return s.ReversedUsernameCount
	case RelationNone:
		return s.NoRelation
	default:
		return 0
	}
}

// AddCount increments the tally for a labeled relation.
// RelationNone is a no-op; the aggregator tracks it directly.
func (s *RelationSummary) AddCount(rel Relation) {
	switch rel {
	case RelationExactUsername:
		s.ExactUsernameCount++
	case RelationExactEmail:
		s.ExactEmailCount++
	case RelationContainsUsername:
		s.ContainsUsernameCount++
	case RelationContainsLocalPart:
		s.ContainsLocalPartCount++
	case RelationContainsToken:
		s.ContainsTokenCount++
	case RelationDeleetUsername:
		s.DeleetUsernameCount++
	case RelationDeleetToken:
		s.DeleetTokenCount++
	case RelationReversedUsername:
		s.ReversedUsernameCount++
	case RelationNone:
	}
}

// PasswordEntropy pairs a password with its Shannon entropy in bits per
// character.
type PasswordEntropy struct {
	Password string  `json:"password"`
	Entropy  float64 `json:"entropy"`
}

// EntropySummary aggregates Shannon-entropy statistics over a record set.
// Entropy is computed per password in bits per character; higher values
// indicate more character-level randomness.
type EntropySummary struct {
	// Count is the number of non-empty passwords measured.
	Count int `json:"count"`

	// Mean and StdDev describe the entropy distribution.
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`

	// Bucketed distribution: low (<2), medium (2-4), high (>=4).
	LowCount    int     `json:"low_count"`
	MediumCount int     `json:"medium_count"`
	HighCount   int     `json:"high_count"`
	LowPct      float64 `json:"low_pct"`
	MediumPct   float64 `json:"medium_pct"`
	HighPct     float64 `json:"high_pct"`

	// TopPasswords lists up to 10 highest-entropy passwords.
	TopPasswords []PasswordEntropy `json:"top_passwords,omitempty"`
}

// SequenceCount pairs a keyboard sequence with its occurrence count.
type SequenceCount struct {
	Sequence string `json:"sequence"`
	Count    int    `json:"count"`
}

// KeyboardSummary aggregates keyboard-walk detection results over a
// record set. A password counts toward a direction when it contains a
// run of 3+ physically adjacent keys in that direction (forwards or
// reversed).
type KeyboardSummary struct {
	// Total is the number of passwords examined.
	Total int `json:"total"`

	// PatternCount counts passwords containing at least one keyboard
	// sequence; PatternPct is its percentage of Total.
	PatternCount int     `json:"pattern_count"`
	PatternPct   float64 `json:"pattern_pct"`

	// Per-direction password counts. A password containing sequences in
	// several directions counts toward each.
	HorizontalCount int `json:"horizontal_count"`
	VerticalCount   int `json:"vertical_count"`
	DiagonalCount   int `json:"diagonal_count"`

	// TopSequences lists up to 10 most frequent sequences overall.
	TopSequences []SequenceCount `json:"top_sequences,omitempty"`

	// SamplePasswords lists up to 10 passwords flagged as keyboard walks,
	// in first-encountered order.
	SamplePasswords []string `json:"sample_passwords,omitempty"`
}
