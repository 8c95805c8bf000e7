package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/aivi"
	main "github.com/fwojciec/aivi/cmd/aivi"
	"github.com/fwojciec/aivi/mock"
	"github.com/fwojciec/aivi/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarmCmd_Run(t *testing.T) {
	t.Parallel()

	newWarmer := func() *retrieval.Warmer {
		knowledge := &mock.KnowledgeService{
			SearchRecordsFn: func(_ context.Context, query, _ string) ([]aivi.ScoredRecord, error) {
				if aivi.NormalizeQuery(query) == "gravity" {
					return []aivi.ScoredRecord{{Record: &aivi.KnowledgeRecord{ID: "g", Answer: "Gravity attracts masses.", Confidence: 0.9}, Score: 2}}, nil
				}
				return []aivi.ScoredRecord{}, nil
			},
			IncrementAccessFn: func(context.Context, string) error { return nil },
		}
		orch := &retrieval.Orchestrator{Knowledge: knowledge, Config: retrieval.Config{Strategy: aivi.StrategyOfflineFirst}}
		return &retrieval.Warmer{Orchestrator: orch, Strategy: aivi.StrategyOfflineFirst, Concurrency: 1}
	}

	t.Run("reads questions from arguments and file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "questions.txt")
		require.NoError(t, os.WriteFile(path, []byte("# warm-up list\ngravity\n\nzorblax\n"), 0o644))

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: stderr, Warmer: newWarmer()}

		err := (&main.WarmCmd{Queries: []string{"Gravity"}, File: path}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Answering 2 questions")
		assert.Contains(t, stdout.String(), "Gravity (offline)")
		assert.Contains(t, stderr.String(), "skip zorblax")
		assert.Contains(t, stdout.String(), "Found 1, missed 1, failed 0")
	})

	t.Run("requires questions", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Warmer: newWarmer()}

		err := (&main.WarmCmd{}).Run(deps)

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no questions given")
	})
}
