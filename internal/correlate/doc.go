// Package correlate implements the credential-correlation detection
// engine: it determines whether and how a password was derived from the
// account's own username or email address.
//
// The engine is layered: normalization canonicalizes strings into a
// lowercase alphanumeric comparison form, tokenization splits identity
// strings into matching candidates, de-obfuscation reverses common
// leet-speak substitutions, and the classifier reduces a battery of
// boolean predicates to a single priority-selected primary relation.
// The aggregator tallies classifications over a full record set.
//
// Every function is pure and total: no predicate ever errors, and
// absent fields simply make predicates referencing them false.
package correlate
