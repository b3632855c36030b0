package correlate

import "strings"

// minTokenLength is the shortest identity token retained for matching.
// Shorter pieces (initials, two-digit years) match almost any password
// and would drown the token predicates in noise.
const minTokenLength = 3

// Normalize canonicalizes a string into the comparison form used by
// every predicate: lowercase with all characters outside [a-z0-9]
// removed. Two raw strings that differ only in case or punctuation are
// treated as identical. Idempotent; empty input yields empty output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Tokenize splits an identity string (username or email local-part) into
// candidate tokens for partial matching. The string is split on every
// maximal run of non-alphanumeric characters, pieces are lowercased, and
// pieces shorter than minTokenLength are discarded. Token order follows
// the source string left to right; duplicates are kept (the classifier
// treats repeats idempotently).
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	pieces := strings.FieldsFunc(s, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})

	tokens := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if len(p) >= minTokenLength {
			tokens = append(tokens, strings.ToLower(p))
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// reverse returns s with its characters in reverse order.
// Inputs are normalized (ASCII alphanumeric) so a byte reversal suffices.
func reverse(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
