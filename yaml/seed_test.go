package yaml_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/mock"
	"github.com/fwojciec/aivi/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	t.Parallel()

	t.Run("decodes records and applies defaults", func(t *testing.T) {
		t.Parallel()

		doc := `
records:
  - category: science
    question: What is osmosis?
    answer: Osmosis is the movement of water across a membrane.
    keywords: [osmosis, water]
  - category: history
    question: Who built the pyramids?
    answer: Ancient Egyptians.
    source: user
    confidence: 0.5
`
		seed, err := yaml.ParseSeed(strings.NewReader(doc))

		require.NoError(t, err)
		require.Len(t, seed.Records, 2)

		first := seed.Records[0].Record()
		assert.Equal(t, "science", first.Category)
		assert.Equal(t, []string{"osmosis", "water"}, first.Keywords)
		assert.Equal(t, aivi.RecordSourceBuiltin, first.Source)
		assert.InDelta(t, yaml.DefaultConfidence, first.Confidence, 1e-9)

		second := seed.Records[1].Record()
		assert.Equal(t, "user", second.Source)
		assert.InDelta(t, 0.5, second.Confidence, 1e-9)
	})

	t.Run("empty document has no records", func(t *testing.T) {
		t.Parallel()

		seed, err := yaml.ParseSeed(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, seed.Records)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseSeed(strings.NewReader("records:\n  - title: x\n"))

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
	})

	t.Run("rejects record without answer", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseSeed(strings.NewReader("records:\n  - question: What?\n"))

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
		assert.Contains(t, aivi.ErrorMessage(err), "seed record 1")
	})

	t.Run("rejects confidence out of range", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ParseSeed(strings.NewReader("records:\n  - question: Q\n    answer: A\n    confidence: 2\n"))

		assert.Equal(t, aivi.EINVALID, aivi.ErrorCode(err))
	})
}

func TestDefaultSeed(t *testing.T) {
	t.Parallel()

	seed, err := yaml.DefaultSeed()

	require.NoError(t, err)
	require.NotEmpty(t, seed.Records)

	var questions []string
	for _, r := range seed.Records {
		questions = append(questions, r.Question)
	}
	assert.Contains(t, questions, "What is photosynthesis?")
	assert.Contains(t, questions, "What is gravity?")
	assert.Contains(t, questions, "What is AI?")
}

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("records:\n  - question: Q\n    answer: A\n"), 0o600))

		seed, err := yaml.LoadSeed(path)

		require.NoError(t, err)
		assert.Len(t, seed.Records, 1)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, aivi.ENOTFOUND, aivi.ErrorCode(err))
	})
}

func TestImport(t *testing.T) {
	t.Parallel()

	t.Run("skips records already present", func(t *testing.T) {
		t.Parallel()

		var created []string
		knowledge := &mock.KnowledgeService{
			FindRecordsFn: func(ctx context.Context, filter aivi.RecordFilter) ([]*aivi.KnowledgeRecord, error) {
				return []*aivi.KnowledgeRecord{{Category: "Science", Question: "what is gravity?"}}, nil
			},
			CreateRecordFn: func(ctx context.Context, rec *aivi.KnowledgeRecord) error {
				created = append(created, rec.Question)
				return nil
			},
		}
		seed := &yaml.Seed{Records: []yaml.SeedRecord{
			{Category: "science", Question: "What is gravity?", Answer: "A force."},
			{Category: "science", Question: "What is osmosis?", Answer: "Diffusion of water."},
			{Category: "science", Question: "What is osmosis?", Answer: "Duplicate in file."},
		}}

		n, err := yaml.Import(context.Background(), knowledge, seed)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []string{"What is osmosis?"}, created)
	})

	t.Run("returns store error with count so far", func(t *testing.T) {
		t.Parallel()

		calls := 0
		knowledge := &mock.KnowledgeService{
			FindRecordsFn: func(ctx context.Context, filter aivi.RecordFilter) ([]*aivi.KnowledgeRecord, error) {
				return nil, nil
			},
			CreateRecordFn: func(ctx context.Context, rec *aivi.KnowledgeRecord) error {
				calls++
				if calls == 2 {
					return errors.New("disk full")
				}
				return nil
			},
		}
		seed := &yaml.Seed{Records: []yaml.SeedRecord{
			{Question: "A?", Answer: "a"},
			{Question: "B?", Answer: "b"},
		}}

		n, err := yaml.Import(context.Background(), knowledge, seed)

		require.Error(t, err)
		assert.Equal(t, 1, n)
	})
}
