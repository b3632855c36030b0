package model

import "strings"

// Record is a single credential-dump entry resolved by the parsing stage.
// Any field may be empty when the source line did not carry it.
// Records are read-only inputs; the analysis never mutates them.
type Record struct {
	// Username is the account name as it appeared in the dump.
	Username string `json:"username"`

	// Email is the account email address, if the dump carried one.
	// Some dumps use an email address as the username; in that case
	// both fields hold the same value.
	Email string `json:"email"`

	// Password is the cleartext password.
	Password string `json:"password"`

	// Source identifies the dump file the record came from.
	Source string `json:"source"`
}

// LocalPart returns the part of the email address before '@'.
// Returns empty string when the record has no email or the email
// contains no '@'.
func (r Record) LocalPart() string {
	if i := strings.IndexByte(r.Email, '@'); i >= 0 {
		return r.Email[:i]
	}
	return ""
}

// IsEmpty reports whether the record carries no identity or password data.
// Such records degrade gracefully to all-false predicates; they are not
// treated as errors.
func (r Record) IsEmpty() bool {
	return r.Username == "" && r.Email == "" && r.Password == ""
}
