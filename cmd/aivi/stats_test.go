package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/aivi"
	main "github.com/fwojciec/aivi/cmd/aivi"
	"github.com/fwojciec/aivi/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	var gotFilter aivi.CacheFilter
	knowledge := &mock.KnowledgeService{
		CountRecordsFn: func(context.Context) (int, error) { return 12, nil },
		CategoriesFn:   func(context.Context) ([]string, error) { return []string{"history", "science"}, nil },
	}
	cache := &mock.CacheService{
		CountEntriesFn: func(context.Context) (int, error) { return 7, nil },
		FindEntriesFn: func(_ context.Context, filter aivi.CacheFilter) ([]*aivi.CacheEntry, error) {
			gotFilter = filter
			return []*aivi.CacheEntry{
				{QueryText: "what is gravity", Source: aivi.SourceOnline, AccessCount: 9},
				{QueryText: "define entropy", Source: aivi.SourceAI, AccessCount: 4},
			}, nil
		},
	}

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Knowledge: knowledge, Cache: cache}

	err := (&main.StatsCmd{Top: 5}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, aivi.SortByAccessCount, gotFilter.SortBy)
	assert.Equal(t, 5, gotFilter.Limit)
	out := stdout.String()
	assert.Contains(t, out, "Knowledge records: 12")
	assert.Contains(t, out, "Subjects: 2")
	assert.Contains(t, out, "Cached answers: 7")
	assert.Contains(t, out, "9  what is gravity  (online)")
	assert.Contains(t, out, "4  define entropy  (ai)")
}

func TestSubjectsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists subjects with topic counts", func(t *testing.T) {
		t.Parallel()

		knowledge := &mock.KnowledgeService{
			CategoriesFn: func(context.Context) ([]string, error) { return []string{"history", "science"}, nil },
			FindRecordsFn: func(_ context.Context, filter aivi.RecordFilter) ([]*aivi.KnowledgeRecord, error) {
				if *filter.Category == "science" {
					return []*aivi.KnowledgeRecord{{ID: "1"}, {ID: "2"}}, nil
				}
				return []*aivi.KnowledgeRecord{{ID: "3"}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Knowledge: knowledge}

		require.NoError(t, (&main.SubjectsCmd{}).Run(deps))

		assert.Equal(t, "history  1 topics\nscience  2 topics\n", stdout.String())
	})

	t.Run("hints at seeding when empty", func(t *testing.T) {
		t.Parallel()

		knowledge := &mock.KnowledgeService{
			CategoriesFn: func(context.Context) ([]string, error) { return []string{}, nil },
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Knowledge: knowledge}

		require.NoError(t, (&main.SubjectsCmd{}).Run(deps))

		assert.Contains(t, stdout.String(), "aivi seed")
	})
}
