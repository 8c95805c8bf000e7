package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/aivi"
	main "github.com/fwojciec/aivi/cmd/aivi"
	"github.com/fwojciec/aivi/cron"
	"github.com/fwojciec/aivi/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("sweeps once", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		var gotCutoff time.Time
		var gotMax int
		cache := &mock.CacheService{
			SweepEntriesFn: func(_ context.Context, cutoff time.Time, maxAccess int) (int, error) {
				gotCutoff, gotMax = cutoff, maxAccess
				return 3, nil
			},
		}
		sweeper := cron.NewSweeper(cache)
		sweeper.MaxAge = 24 * time.Hour
		sweeper.MaxAccess = 2
		sweeper.Now = func() time.Time { return now }

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Sweeper: sweeper}

		require.NoError(t, (&main.SweepCmd{}).Run(deps))

		assert.Equal(t, now.Add(-24*time.Hour), gotCutoff)
		assert.Equal(t, 2, gotMax)
		assert.Contains(t, stdout.String(), "Removed 3 cache entries")
	})

	t.Run("rejects bad schedule", func(t *testing.T) {
		t.Parallel()

		sweeper := cron.NewSweeper(&mock.CacheService{})
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Sweeper: sweeper}

		err := (&main.SweepCmd{Schedule: "not a schedule"}).Run(deps)

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("scheduled sweep stops with the context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sweeper := cron.NewSweeper(&mock.CacheService{
			SweepEntriesFn: func(context.Context, time.Time, int) (int, error) { return 0, nil },
		})
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: ctx, Stdout: stdout, Stderr: &bytes.Buffer{}, Sweeper: sweeper}

		err := (&main.SweepCmd{Schedule: "@hourly"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `Sweeping on schedule "@hourly"`)
	})
}
