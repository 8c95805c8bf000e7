package bloom

import (
	"context"

	"github.com/fwojciec/aivi"
)

// Default sizing for the cache key filter.
const (
	DefaultExpectedKeys = 100_000
	DefaultFPRate       = 0.01
)

var _ aivi.CacheService = (*CacheService)(nil)

// CacheService answers misses for queries that were never cached without
// touching the wrapped store. Swept entries stay in the filter and fall
// through to the store as ordinary misses.
type CacheService struct {
	aivi.CacheService
	keys *Filter
}

// NewCacheService wraps svc with an empty filter. Call Load to seed it from
// entries already in the store.
func NewCacheService(svc aivi.CacheService, keys *Filter) *CacheService {
	return &CacheService{CacheService: svc, keys: keys}
}

// Load adds every stored query to the filter, paging through FindEntries.
func (s *CacheService) Load(ctx context.Context) error {
	const page = 500
	for offset := 0; ; offset += page {
		entries, err := s.CacheService.FindEntries(ctx, aivi.CacheFilter{Offset: offset, Limit: page})
		if err != nil {
			return err
		}
		for _, e := range entries {
			s.keys.Add(aivi.NormalizeQuery(e.QueryText))
		}
		if len(entries) < page {
			return nil
		}
	}
}

// GetEntry returns ENOTFOUND for queries the filter has never seen.
func (s *CacheService) GetEntry(ctx context.Context, query string) (*aivi.CacheEntry, error) {
	if !s.keys.Test(aivi.NormalizeQuery(query)) {
		return nil, aivi.Errorf(aivi.ENOTFOUND, "cache entry not found")
	}
	return s.CacheService.GetEntry(ctx, query)
}

// PutEntry records the query in the filter once the store accepts it.
func (s *CacheService) PutEntry(ctx context.Context, query, response string, source aivi.Source) (*aivi.CacheEntry, error) {
	entry, err := s.CacheService.PutEntry(ctx, query, response, source)
	if err != nil {
		return nil, err
	}
	s.keys.Add(aivi.NormalizeQuery(query))
	return entry, nil
}
