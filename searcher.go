package aivi

import "context"

// SearchResult is the reply of an online search provider.
type SearchResult struct {
	Success bool        `json:"success"`
	Summary string      `json:"summary"`
	Sources []Reference `json:"sources"`
}

// Usable reports whether the result can terminate a fallback lookup.
func (r *SearchResult) Usable() bool {
	return r != nil && r.Success && r.Summary != ""
}

// Searcher queries an online search provider.
type Searcher interface {
	// Search runs query against the provider. A provider that finds nothing
	// returns a result with Success false rather than an error.
	Search(ctx context.Context, query string) (*SearchResult, error)
}
