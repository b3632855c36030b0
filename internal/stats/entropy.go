package stats

import (
	"math"
	"sort"

	"github.com/nao1215/credscan/internal/model"
)

// Entropy bucket boundaries in bits per character.
// Below lowEntropyBound a password is effectively a repeated-character
// or tiny-alphabet string; above highEntropyBound it approaches random.
const (
	lowEntropyBound  = 2.0
	highEntropyBound = 4.0
)

// maxTopPasswords caps the highest-entropy example list.
const maxTopPasswords = 10

// ShannonEntropy computes the Shannon entropy of a password in bits per
// character, based on its character frequency distribution. Empty input
// yields 0.
func ShannonEntropy(password string) float64 {
	if password == "" {
		return 0
	}

	counts := make(map[rune]int)
	length := 0
	for _, r := range password {
		counts[r]++
		length++
	}

	var entropy float64
	for _, c := range counts {
		p := float64(c) / float64(length)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

// AnalyzeEntropy computes the entropy summary over a record set.
// Records with empty passwords are excluded from the distribution.
// Returns an all-zero summary for an empty set.
func AnalyzeEntropy(records []model.Record) *model.EntropySummary {
	summary := &model.EntropySummary{}

	entries := make([]model.PasswordEntropy, 0, len(records))
	var sum float64
	for _, rec := range records {
		if rec.Password == "" {
			continue
		}
		e := ShannonEntropy(rec.Password)
		entries = append(entries, model.PasswordEntropy{Password: rec.Password, Entropy: e})
		sum += e

		switch {
		case e < lowEntropyBound:
			summary.LowCount++
		case e < highEntropyBound:
			summary.MediumCount++
		default:
			summary.HighCount++
		}
	}

	summary.Count = len(entries)
	if summary.Count == 0 {
		return summary
	}

	summary.Mean = sum / float64(summary.Count)

	var variance float64
	for _, entry := range entries {
		d := entry.Entropy - summary.Mean
		variance += d * d
	}
	variance /= float64(summary.Count)
	summary.StdDev = math.Sqrt(variance)

	summary.LowPct = percentage(summary.LowCount, summary.Count)
	summary.MediumPct = percentage(summary.MediumCount, summary.Count)
	summary.HighPct = percentage(summary.HighCount, summary.Count)

	// Top passwords by entropy, stable so ties keep input order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Entropy > entries[j].Entropy
	})
	if len(entries) > maxTopPasswords {
		entries = entries[:maxTopPasswords]
	}
	summary.TopPasswords = entries

	return summary
}

// percentage returns n/total*100 rounded to two decimal places,
// or 0 when total is 0.
func percentage(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*100*100) / 100
}
