// Package similarity implements the partial-ratio string score used by catalog search.
package similarity

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Normalize lowercases and trims a string before scoring.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PartialRatio scores in [0,100] how well the shorter of query and candidate
// appears inside the longer one. Each matching block of the two strings
// anchors a window of the longer string with the shorter string's length;
// the window is scored by the sequence-matcher ratio 2·M/T and the best
// window wins. Inputs are normalized first. An empty side scores 0.
func PartialRatio(query, candidate string) int {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0
	}
	if strings.Contains(c, q) || strings.Contains(q, c) {
		return 100
	}

	short, long := runes(q), runes(c)
	if len(short) > len(long) {
		short, long = long, short
	}

	best := 0.0
	for _, m := range difflib.NewMatcher(short, long).GetMatchingBlocks() {
		start := max(m.B-m.A, 0)
		end := min(start+len(short), len(long))
		r := difflib.NewMatcher(short, long[start:end]).Ratio()
		if r > 0.995 {
			return 100
		}
		best = max(best, r)
	}
	return int(math.RoundToEven(best * 100))
}

// runes splits s into one element per code point, the unit the matcher compares.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
