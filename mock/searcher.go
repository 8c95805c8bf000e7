package mock

import (
	"context"

	"github.com/fwojciec/aivi"
)

var _ aivi.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of aivi.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) (*aivi.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string) (*aivi.SearchResult, error) {
	return s.SearchFn(ctx, query)
}
