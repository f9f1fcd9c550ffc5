package ui

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

type filterMatch struct {
	index    int
	exact    bool // query is a substring of the name
	position int  // substring offset, or edit distance for fuzzy matches
}

// rankByName returns the indexes of names matching query, best first.
// Substring matches rank ahead of fuzzy ones; fuzzy matches must be within
// max(1, len(query)/3) edits of the name or of its same-length prefix.
func rankByName(names []string, query string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]int, len(names))
		for i := range names {
			out[i] = i
		}
		return out
	}

	budget := max(1, len([]rune(q))/3)
	matches := make([]filterMatch, 0, len(names))
	for i, raw := range names {
		name := strings.ToLower(raw)
		if pos := strings.Index(name, q); pos >= 0 {
			matches = append(matches, filterMatch{index: i, exact: true, position: pos})
			continue
		}
		if d := fuzzyDistance(q, name); d <= budget {
			matches = append(matches, filterMatch{index: i, position: d})
		}
	}

	slices.SortStableFunc(matches, func(a, b filterMatch) int {
		if a.exact != b.exact {
			if a.exact {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.position, b.position)
	})

	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.index
	}
	return out
}

func fuzzyDistance(query, name string) int {
	best := levenshtein.ComputeDistance(query, name)
	qr, nr := []rune(query), []rune(name)
	if len(nr) > len(qr) {
		best = min(best, levenshtein.ComputeDistance(query, string(nr[:len(qr)])))
	}
	return best
}
