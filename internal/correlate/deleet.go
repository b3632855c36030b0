package correlate

import "strings"

// leetTable maps common leet-speak substitution characters back to their
// letter equivalents. The table mirrors the substitutions observed in
// the analyzed dumps rather than an idealized leet alphabet: note that
// '1' maps to 'l' while '!' maps to 'i'. The asymmetry is deliberate and
// must not be "fixed" - matching observed obfuscation behavior matters
// more than a consistent table.
//
// The table is static read-only configuration; it is never mutated after
// initialization.
var leetTable = map[rune]rune{
	'4': 'a', '@': 'a',
	'0': 'o',
	'1': 'l', '!': 'i',
	'3': 'e',
	'$': 's', '5': 's',
	'7': 't', '+': 't',
	'2': 'z',
	'9': 'g', '6': 'g',
}

// Deleet reverses common leet-speak character substitutions in s and
// lowercases the result. Each character is mapped independently in a
// single pass; characters absent from the table pass through unchanged.
// Multi-character leet sequences (e.g. "|/|" for 'n') are not handled.
func Deleet(s string) string {
	if s == "" {
		return ""
	}

	out := make([]rune, 0, len(s))
	for _, r := range s {
		if sub, ok := leetTable[r]; ok {
			out = append(out, sub)
		} else {
			out = append(out, r)
		}
	}
	return strings.ToLower(string(out))
}
