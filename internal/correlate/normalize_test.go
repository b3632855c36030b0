package correlate

import (
	"reflect"
	"testing"
)

// TestNormalize tests lowercase alphanumeric normalization.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases letters", input: "John", want: "john"},
		{name: "strips punctuation", input: "John.Smith!", want: "johnsmith"},
		{name: "keeps digits", input: "user99", want: "user99"},
		{name: "strips unicode symbols", input: "j@hn-doe_42", want: "jhndoe42"},
		{name: "empty input", input: "", want: ""},
		{name: "only punctuation", input: "@#!-_.", want: ""},
		{name: "mixed case with digits", input: "AbC123", want: "abc123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent verifies that normalizing twice equals
// normalizing once.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"John.Smith99", "UPPER", "", "a!b@c#1$2%3", "already"}
	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

// TestTokenize tests token extraction from identity strings.
func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "splits on punctuation and drops short tokens",
			input: "john.smith99",
			want:  []string{"john", "smith99"},
		},
		{
			name:  "drops tokens shorter than three characters",
			input: "jo.smith",
			want:  []string{"smith"},
		},
		{
			name:  "lowercases tokens",
			input: "John_Doe",
			want:  []string{"john", "doe"},
		},
		{
			name:  "splits on multiple separators",
			input: "alice-bob+carol",
			want:  []string{"alice", "bob", "carol"},
		},
		{
			name:  "empty input yields nil",
			input: "",
			want:  nil,
		},
		{
			name:  "all tokens too short yields nil",
			input: "a.b.cd",
			want:  nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestDeleet tests leet-speak reversal.
func TestDeleet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "classic substitutions", input: "p4ssw0rd", want: "password"},
		{name: "dollar and at signs", input: "$@m", want: "sam"},
		{name: "digit one maps to ell", input: "he11o", want: "hello"},
		{name: "bang maps to i", input: "al!ce", want: "alice"},
		{name: "lowercases result", input: "J0HN", want: "john"},
		{name: "untouched characters pass through", input: "plain", want: "plain"},
		{name: "empty input", input: "", want: ""},
		{name: "seven and plus map to t", input: "7es+", want: "test"},
		{name: "nine and six map to g", input: "96", want: "gg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Deleet(tt.input); got != tt.want {
				t.Errorf("Deleet(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
