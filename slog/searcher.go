package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/aivi"
)

// Ensure LoggingSearcher implements aivi.Searcher.
var _ aivi.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with debug logging.
type LoggingSearcher struct {
	next   aivi.Searcher
	logger *slog.Logger
	name   string
}

// NewLoggingSearcher creates a new LoggingSearcher. Name tells providers
// apart in the log.
func NewLoggingSearcher(next aivi.Searcher, name string, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger, name: name}
}

// Search delegates to the wrapped searcher and logs the outcome.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (res *aivi.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("online search",
			"provider", s.name,
			"query", query,
			"usable", res.Usable(),
			"sources", sourceCount(res),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

func sourceCount(res *aivi.SearchResult) int {
	if res == nil {
		return 0
	}
	return len(res.Sources)
}
