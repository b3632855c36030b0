package stats

import (
	"sort"
	"strings"

	"github.com/nao1215/credscan/internal/model"
)

// minSequenceLength is the shortest keyboard run that counts as a walk.
// Two adjacent keys occur constantly by chance; three in a row is a
// deliberate pattern.
const minSequenceLength = 3

// maxTopSequences caps the most-frequent-sequence list.
const maxTopSequences = 10

// maxSamplePasswords caps the example password list.
const maxSamplePasswords = 10

// walkCategory distinguishes the physical direction of a keyboard run.
type walkCategory int

const (
	walkHorizontal walkCategory = iota
	walkVertical
	walkDiagonal
)

// keyboardWalk is one base sequence of physically adjacent keys on a
// US QWERTY layout. Matching is case-insensitive and also covers the
// reversed direction of every sequence.
type keyboardWalk struct {
	keys     string
	category walkCategory
}

var keyboardWalks = []keyboardWalk{
	// Horizontal rows.
	{"1234567890", walkHorizontal},
	{"qwertyuiop", walkHorizontal},
	{"asdfghjkl", walkHorizontal},
	{"zxcvbnm", walkHorizontal},
	// Shifted number row counts as horizontal: same keys, shift held.
	{"!@#$%^&*()", walkHorizontal},

	// Vertical columns, top to bottom.
	{"1qaz", walkVertical},
	{"2wsx", walkVertical},
	{"3edc", walkVertical},
	{"4rfv", walkVertical},
	{"5tgb", walkVertical},
	{"6yhn", walkVertical},
	{"7ujm", walkVertical},

	// Diagonal runs across rows.
	{"1q2w3e4r5t", walkDiagonal},
	{"zaq1xsw2", walkDiagonal},
	{"xsw2zaq1", walkDiagonal},
	{"1qazxsw2", walkDiagonal},
	{"qazwsx", walkDiagonal},
	{"wsxedc", walkDiagonal},
	{"zaqwsx", walkDiagonal},
}

// findWalks returns every maximal run of length >= minSequenceLength
// from the known walks (forwards or reversed) present in the lowercased
// password. Runs are reported as the matched substring, so "qwerty" and
// "werty" are distinct sequences in the tally.
func findWalks(password string) map[string]walkCategory {
	if len(password) < minSequenceLength {
		return nil
	}
	lower := strings.ToLower(password)

	var found map[string]walkCategory
	record := func(seq string, cat walkCategory) {
		if found == nil {
			found = make(map[string]walkCategory)
		}
		if _, ok := found[seq]; !ok {
			found[seq] = cat
		}
	}

	for _, walk := range keyboardWalks {
		for _, keys := range []string{walk.keys, reverseString(walk.keys)} {
			// Maximal matches only: grow the window from each start
			// position and keep the longest hit, so "qwerty" does not
			// also tally "qwert" and "qwer".
			for start := 0; start+minSequenceLength <= len(keys); start++ {
				longest := ""
				for end := start + minSequenceLength; end <= len(keys); end++ {
					seq := keys[start:end]
					if !strings.Contains(lower, seq) {
						break
					}
					longest = seq
				}
				if longest != "" {
					record(longest, walk.category)
				}
			}
		}
	}
	return found
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// AnalyzeKeyboard detects keyboard-walk patterns across a record set and
// returns the keyboard summary. Returns an all-zero summary for an empty
// set.
func AnalyzeKeyboard(records []model.Record) *model.KeyboardSummary {
	summary := &model.KeyboardSummary{}

	sequenceCounts := make(map[string]int)
	for _, rec := range records {
		if rec.Password == "" {
			continue
		}
		summary.Total++

		walks := findWalks(rec.Password)
		if len(walks) == 0 {
			continue
		}
		summary.PatternCount++
		if len(summary.SamplePasswords) < maxSamplePasswords {
			summary.SamplePasswords = append(summary.SamplePasswords, rec.Password)
		}

		// A password tallies each direction at most once.
		var horizontal, vertical, diagonal bool
		for seq, cat := range walks {
			sequenceCounts[seq]++
			switch cat {
			case walkHorizontal:
				horizontal = true
			case walkVertical:
				vertical = true
			case walkDiagonal:
				diagonal = true
			}
		}
		if horizontal {
			summary.HorizontalCount++
		}
		if vertical {
			summary.VerticalCount++
		}
		if diagonal {
			summary.DiagonalCount++
		}
	}

	summary.PatternPct = percentage(summary.PatternCount, summary.Total)

	if len(sequenceCounts) > 0 {
		top := make([]model.SequenceCount, 0, len(sequenceCounts))
		for seq, n := range sequenceCounts {
			top = append(top, model.SequenceCount{Sequence: seq, Count: n})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].Count != top[j].Count {
				return top[i].Count > top[j].Count
			}
			return top[i].Sequence < top[j].Sequence
		})
		if len(top) > maxTopSequences {
			top = top[:maxTopSequences]
		}
		summary.TopSequences = top
	}

	return summary
}
