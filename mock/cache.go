package mock

import (
	"context"
	"time"

	"github.com/fwojciec/aivi"
)

var _ aivi.CacheService = (*CacheService)(nil)

// CacheService is a mock implementation of aivi.CacheService.
type CacheService struct {
	GetEntryFn     func(ctx context.Context, query string) (*aivi.CacheEntry, error)
	PutEntryFn     func(ctx context.Context, query, response string, source aivi.Source) (*aivi.CacheEntry, error)
	FindEntriesFn  func(ctx context.Context, filter aivi.CacheFilter) ([]*aivi.CacheEntry, error)
	SweepEntriesFn func(ctx context.Context, cutoff time.Time, maxAccess int) (int, error)
	CountEntriesFn func(ctx context.Context) (int, error)
}

func (s *CacheService) GetEntry(ctx context.Context, query string) (*aivi.CacheEntry, error) {
	return s.GetEntryFn(ctx, query)
}

func (s *CacheService) PutEntry(ctx context.Context, query, response string, source aivi.Source) (*aivi.CacheEntry, error) {
	return s.PutEntryFn(ctx, query, response, source)
}

func (s *CacheService) FindEntries(ctx context.Context, filter aivi.CacheFilter) ([]*aivi.CacheEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *CacheService) SweepEntries(ctx context.Context, cutoff time.Time, maxAccess int) (int, error) {
	return s.SweepEntriesFn(ctx, cutoff, maxAccess)
}

func (s *CacheService) CountEntries(ctx context.Context) (int, error) {
	return s.CountEntriesFn(ctx)
}
