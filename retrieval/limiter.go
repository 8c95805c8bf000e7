package retrieval

import (
	"context"
	"sync"

	"github.com/fwojciec/aivi"
	"golang.org/x/time/rate"
)

var _ aivi.RateLimiter = (*StageLimiter)(nil)

// StageLimiter paces calls per key using token buckets. The orchestrator
// keys calls by stage, so online searches and AI requests are limited
// independently.
type StageLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewStageLimiter creates a StageLimiter allowing rps calls per second per
// key with the given burst. A burst below 1 is treated as 1.
func NewStageLimiter(rps float64, burst int) *StageLimiter {
	if burst < 1 {
		burst = 1
	}
	return &StageLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Wait blocks until a call keyed by key is allowed.
func (l *StageLimiter) Wait(ctx context.Context, key string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
