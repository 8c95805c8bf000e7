package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/aivi"
	main "github.com/fwojciec/aivi/cmd/aivi"
	"github.com/fwojciec/aivi/mock"
	"github.com/fwojciec/aivi/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRememberCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("guesses category and keywords", func(t *testing.T) {
		t.Parallel()

		var created *aivi.KnowledgeRecord
		knowledge := &mock.KnowledgeService{
			CreateRecordFn: func(_ context.Context, rec *aivi.KnowledgeRecord) error {
				rec.ID = "rec-1"
				created = rec
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Knowledge: knowledge,
			Learner:   retrieval.NewLearner(knowledge),
		}

		cmd := &main.RememberCmd{Question: "Explain cell biology", Answer: "Cells are the units of life."}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, retrieval.CategoryScience, created.Category)
		assert.Equal(t, []string{"explain", "cell", "biology"}, created.Keywords)
		assert.Equal(t, aivi.RecordSourceUser, created.Source)
		assert.InDelta(t, aivi.DefaultUserConfidence, created.Confidence, 1e-9)
		assert.Contains(t, stdout.String(), "(rec-1)")
	})

	t.Run("keeps explicit category and keywords", func(t *testing.T) {
		t.Parallel()

		var created *aivi.KnowledgeRecord
		knowledge := &mock.KnowledgeService{
			CreateRecordFn: func(_ context.Context, rec *aivi.KnowledgeRecord) error {
				created = rec
				return nil
			},
		}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Knowledge: knowledge,
			Learner:   retrieval.NewLearner(knowledge),
		}

		cmd := &main.RememberCmd{Question: "Who wrote Hamlet?", Answer: "Shakespeare.", Category: "english", Keywords: []string{"hamlet"}}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "english", created.Category)
		assert.Equal(t, []string{"hamlet"}, created.Keywords)
	})

	t.Run("reports invalid record", func(t *testing.T) {
		t.Parallel()

		knowledge := &mock.KnowledgeService{
			CreateRecordFn: func(_ context.Context, rec *aivi.KnowledgeRecord) error {
				return rec.Validate()
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Knowledge: knowledge,
			Learner:   retrieval.NewLearner(knowledge),
		}

		err := (&main.RememberCmd{Question: "Empty?", Answer: ""}).Run(deps)

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: record answer required")
	})
}
