// Package cron schedules search cache maintenance.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/aivi"
	rcron "github.com/robfig/cron/v3"
)

// DefaultSchedule runs the sweep daily at 03:00.
const DefaultSchedule = "0 3 * * *"

// Sweeper removes stale, rarely used cache entries. The knowledge base is
// never swept.
type Sweeper struct {
	Cache     aivi.CacheService
	MaxAge    time.Duration
	MaxAccess int
	Logger    *slog.Logger
	Now       func() time.Time

	mu   sync.Mutex
	cron *rcron.Cron
	done chan struct{}
}

// NewSweeper returns a Sweeper with the default age and access limits.
func NewSweeper(cache aivi.CacheService) *Sweeper {
	return &Sweeper{
		Cache:     cache,
		MaxAge:    aivi.DefaultSweepAge,
		MaxAccess: aivi.DefaultSweepMaxAccess,
		Now:       time.Now,
	}
}

func (s *Sweeper) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// Sweep removes entries last touched more than MaxAge ago whose access
// count is at most MaxAccess. Returns the number removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	if s.MaxAge <= 0 {
		return 0, aivi.Errorf(aivi.EINVALID, "sweep age must be positive")
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Cache.SweepEntries(ctx, now().Add(-s.MaxAge), s.MaxAccess)
}

// Start runs Sweep on schedule until Stop is called or ctx is done.
// Schedule uses the standard five-field cron syntax.
func (s *Sweeper) Start(ctx context.Context, schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return aivi.Errorf(aivi.ECONFLICT, "sweeper already started")
	}

	c := rcron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := s.Sweep(ctx)
		if err != nil {
			s.logger().Error("scheduled sweep", "err", err)
			return
		}
		s.logger().Info("scheduled sweep", "removed", n)
	})
	if err != nil {
		return aivi.Errorf(aivi.EINVALID, "invalid schedule %q: %v", schedule, err)
	}
	c.Start()
	s.cron = c
	done := make(chan struct{})
	s.done = done

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-done:
		}
	}()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	c, done := s.cron, s.done
	s.cron, s.done = nil, nil
	s.mu.Unlock()
	if c == nil {
		return
	}
	close(done)
	<-c.Stop().Done()
}
