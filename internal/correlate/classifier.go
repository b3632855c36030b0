package correlate

import (
	"strings"

	"github.com/nao1215/credscan/internal/model"
)

// Classify computes the full predicate vector for a record and selects
// its primary relation.
//
// All predicates compare normalized forms. Empty identity strings never
// match anything, including an empty password; this guards against
// spurious zero-length matches. The function is total: it never errors
// and always returns a complete flag vector.
func Classify(rec model.Record) (model.RelationFlags, model.Relation) {
	u := Normalize(rec.Username)
	e := Normalize(rec.Email)
	p := Normalize(rec.Password)
	local := Normalize(rec.LocalPart())

	var flags model.RelationFlags

	flags.ExactUsername = u != "" && p == u
	flags.ExactEmail = e != "" && p == e

	flags.ContainsUsername = u != "" && strings.Contains(p, u)
	flags.StartsWithUsername = u != "" && strings.HasPrefix(p, u)
	flags.EndsWithUsername = u != "" && strings.HasSuffix(p, u)

	flags.ContainsLocalPart = local != "" && strings.Contains(p, local)

	// Tokens from the username and the email local-part are pooled for
	// token-level matching.
	tokens := append(Tokenize(rec.Username), Tokenize(rec.LocalPart())...)
	for _, t := range tokens {
		if strings.Contains(p, t) {
			flags.ContainsToken = true
			flags.MatchedTokens = append(flags.MatchedTokens, t)
		}
	}

	if rev := reverse(u); rev != "" && strings.Contains(p, rev) {
		flags.ReversedUsername = true
	}

	// De-obfuscated variants: reverse leet substitutions in the raw
	// password, then normalize for comparison.
	deleeted := Normalize(Deleet(rec.Password))
	flags.DeleetContainsUsername = u != "" && strings.Contains(deleeted, u)
	for _, t := range tokens {
		if strings.Contains(deleeted, t) {
			flags.DeleetContainsToken = true
			flags.MatchedDeleetTokens = append(flags.MatchedDeleetTokens, t)
		}
	}

	return flags, primaryRelation(flags)
}

// primaryRelation selects the single highest-priority true predicate.
// The ordered short-circuit evaluation guarantees mutual exclusivity:
// exactly one label (or none) per record.
func primaryRelation(f model.RelationFlags) model.Relation {
	ordered := []struct {
		rel model.Relation
		on  bool
	}{
		{model.RelationExactUsername, f.ExactUsername},
		{model.RelationExactEmail, f.ExactEmail},
		{model.RelationContainsUsername, f.ContainsUsername},
		{model.RelationContainsLocalPart, f.ContainsLocalPart},
		{model.RelationContainsToken, f.ContainsToken},
		{model.RelationDeleetUsername, f.DeleetContainsUsername},
		{model.RelationDeleetToken, f.DeleetContainsToken},
		{model.RelationReversedUsername, f.ReversedUsername},
	}

	for _, c := range ordered {
		if c.on {
			return c.rel
		}
	}
	return model.RelationNone
}
