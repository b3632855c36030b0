package model

// Relation labels how a password was derived from the account's own
// identity strings. At most one relation is reported per record, chosen
// by a fixed priority order.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// the stable label used in reports, CSV exports, and stored summaries.
type Relation int

const (
	// RelationNone indicates no detectable relation between the password
	// and the account's username or email.
	RelationNone Relation = iota

	// RelationExactUsername indicates the password equals the username
	// after normalization. The strongest form of self-referential reuse.
	RelationExactUsername

	// RelationExactEmail indicates the password equals the full email
	// address after normalization.
	RelationExactEmail

	// RelationContainsUsername indicates the normalized username appears
	// somewhere inside the normalized password.
	RelationContainsUsername

	// RelationContainsLocalPart indicates the email local-part (the text
	// before '@') appears inside the normalized password.
	RelationContainsLocalPart

	// RelationContainsToken indicates at least one identity token (a piece
	// of the username or email local-part, 3+ characters) appears inside
	// the normalized password.
	RelationContainsToken

	// RelationDeleetUsername indicates the username appears inside the
	// password once common leet-speak substitutions are reversed.
	RelationDeleetUsername

	// RelationDeleetToken indicates an identity token appears inside the
	// de-obfuscated password.
	RelationDeleetToken

	// RelationReversedUsername indicates the character-reversed username
	// appears inside the normalized password.
	RelationReversedUsername
)

// relationLabels maps relations to their stable report labels.
// These labels are part of the CSV export format and stored summaries;
// changing them breaks historical data.
var relationLabels = map[Relation]string{
	RelationNone:              "no_relation",
	RelationExactUsername:     "exact_username",
	RelationExactEmail:        "exact_email",
	RelationContainsUsername:  "contains_username",
	RelationContainsLocalPart: "contains_localpart",
	RelationContainsToken:     "contains_token",
	RelationDeleetUsername:    "deleet_contains_username",
	RelationDeleetToken:       "deleet_contains_token",
	RelationReversedUsername:  "reversed_username",
}

// String returns the stable label for the relation.
func (r Relation) String() string {
	if label, ok := relationLabels[r]; ok {
		return label
	}
	return "unknown"
}

// IsRelated reports whether the relation indicates self-referential reuse.
func (r Relation) IsRelated() bool {
	return r != RelationNone
}

// RelationPriority lists the labeled relations in selection order,
// strongest first. When several predicates hold for a record, the first
// relation in this list whose predicate is true becomes the primary
// relation. The ordering reflects severity: stronger, more obviously
// risky relations are reported over weaker circumstantial ones, and a
// record is never double-counted across labels.
var RelationPriority = []Relation{
	RelationExactUsername,
	RelationExactEmail,
	RelationContainsUsername,
	RelationContainsLocalPart,
	RelationContainsToken,
	RelationDeleetUsername,
	RelationDeleetToken,
	RelationReversedUsername,
}

// RelationFlags is the full predicate vector computed for a record.
// All predicates are computed even though only the highest-priority true
// one becomes the primary relation; the CSV export reports the complete
// vector per related record.
//
// StartsWithUsername and EndsWithUsername are diagnostic-only: they are
// computed and exported but never participate in primary selection.
type RelationFlags struct {
	ExactUsername          bool `json:"exact_username"`
	ExactEmail             bool `json:"exact_email"`
	ContainsUsername       bool `json:"contains_username"`
	StartsWithUsername     bool `json:"startswith_username"`
	EndsWithUsername       bool `json:"endswith_username"`
	ContainsLocalPart      bool `json:"contains_localpart"`
	ContainsToken          bool `json:"contains_token"`
	DeleetContainsUsername bool `json:"deleet_contains_username"`
	DeleetContainsToken    bool `json:"deleet_contains_token"`
	ReversedUsername       bool `json:"reversed_username"`

	// MatchedTokens lists identity tokens found inside the normalized
	// password, in the order encountered.
	MatchedTokens []string `json:"matched_tokens,omitempty"`

	// MatchedDeleetTokens lists identity tokens found inside the
	// de-obfuscated password, in the order encountered.
	MatchedDeleetTokens []string `json:"matched_deleet_tokens,omitempty"`
}

// TrueFlags returns the labels of all true boolean predicates in a stable
// order. Token lists are excluded; they are exported separately.
func (f RelationFlags) TrueFlags() []string {
	checks := []struct {
		label string
		on    bool
	}{
		{"exact_username", f.ExactUsername},
		{"exact_email", f.ExactEmail},
		{"contains_username", f.ContainsUsername},
		{"startswith_username", f.StartsWithUsername},
		{"endswith_username", f.EndsWithUsername},
		{"contains_localpart", f.ContainsLocalPart},
		{"contains_token", f.ContainsToken},
		{"deleet_contains_username", f.DeleetContainsUsername},
		{"deleet_contains_token", f.DeleetContainsToken},
		{"reversed_username", f.ReversedUsername},
	}

	labels := make([]string, 0, len(checks))
	for _, c := range checks {
		if c.on {
			labels = append(labels, c.label)
		}
	}
	return labels
}

// Classification is the per-record output of the correlation engine:
// the record itself, its primary relation, and the full predicate vector.
type Classification struct {
	Record  Record        `json:"record"`
	Primary Relation      `json:"primary"`
	Flags   RelationFlags `json:"flags"`
}
