// Package stats implements password-statistics analyses that complement
// the correlation engine: per-password Shannon entropy and keyboard-walk
// detection. Both are single-pass, purely functional computations over
// an in-memory record set.
package stats
