package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/aivi"
)

// Ensure LoggingCacheService implements aivi.CacheService.
var _ aivi.CacheService = (*LoggingCacheService)(nil)

// LoggingCacheService wraps a CacheService with debug logging.
type LoggingCacheService struct {
	next   aivi.CacheService
	logger *slog.Logger
}

// NewLoggingCacheService creates a new LoggingCacheService.
func NewLoggingCacheService(next aivi.CacheService, logger *slog.Logger) *LoggingCacheService {
	return &LoggingCacheService{next: next, logger: logger}
}

// GetEntry delegates to the wrapped service and logs hits and misses.
// A miss is not logged as an error.
func (s *LoggingCacheService) GetEntry(ctx context.Context, query string) (entry *aivi.CacheEntry, err error) {
	defer func(begin time.Time) {
		attrs := []any{"query", query, "hit", entry != nil, "duration", time.Since(begin)}
		if err != nil && aivi.ErrorCode(err) != aivi.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("cache lookup", attrs...)
	}(time.Now())
	return s.next.GetEntry(ctx, query)
}

func (s *LoggingCacheService) PutEntry(ctx context.Context, query, response string, source aivi.Source) (entry *aivi.CacheEntry, err error) {
	defer func(begin time.Time) {
		var hits int
		if entry != nil {
			hits = entry.AccessCount
		}
		s.logger.Debug("cache store",
			"query", query,
			"source", source,
			"bytes", len(response),
			"accessCount", hits,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PutEntry(ctx, query, response, source)
}

func (s *LoggingCacheService) FindEntries(ctx context.Context, filter aivi.CacheFilter) ([]*aivi.CacheEntry, error) {
	return s.next.FindEntries(ctx, filter)
}

// SweepEntries delegates to the wrapped service and logs the number removed.
func (s *LoggingCacheService) SweepEntries(ctx context.Context, cutoff time.Time, maxAccess int) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache sweep",
			"cutoff", cutoff.Format(time.RFC3339),
			"maxAccess", maxAccess,
			"removed", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SweepEntries(ctx, cutoff, maxAccess)
}

func (s *LoggingCacheService) CountEntries(ctx context.Context) (int, error) {
	return s.next.CountEntries(ctx)
}
