package goquery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Summary limits.
const (
	summaryHits     = 3
	maxSnippetChars = 150
)

// Relevance scores a hit against query: +2 per query word found in the
// title, +1 per word found in the snippet, +3 when the whole query appears
// in the title and +2 when it appears in the snippet.
func Relevance(query, title, snippet string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	title = strings.ToLower(title)
	snippet = strings.ToLower(snippet)

	var score float64
	for _, w := range strings.Fields(q) {
		if strings.Contains(title, w) {
			score += 2
		}
		if strings.Contains(snippet, w) {
			score += 1
		}
	}
	if q != "" && strings.Contains(title, q) {
		score += 3
	}
	if q != "" && strings.Contains(snippet, q) {
		score += 2
	}
	return score
}

// RankHits scores hits against query and orders them by relevance,
// keeping page order among equals.
func RankHits(query string, hits []Hit) []Hit {
	for i := range hits {
		hits[i].Relevance = Relevance(query, hits[i].Title, hits[i].Snippet)
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(b.Relevance, a.Relevance)
	})
	return hits
}

// Summarize builds a spoken summary from the best ranked hits.
func Summarize(query string, hits []Hit) string {
	if len(hits) == 0 {
		return ""
	}

	parts := []string{fmt.Sprintf("Based on a web search for '%s':", query)}
	for i, h := range hits[:min(summaryHits, len(hits))] {
		snippet := h.Snippet
		if r := []rune(snippet); len(r) > maxSnippetChars {
			snippet = string(r[:maxSnippetChars-3]) + "..."
		}
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, snippet))
	}
	if len(hits) > summaryHits {
		parts = append(parts, fmt.Sprintf("(Found %d results in total.)", len(hits)))
	}
	return strings.Join(parts, "\n\n")
}
