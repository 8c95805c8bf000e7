package aivi_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/aivi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestScore(t *testing.T) {
	t.Parallel()

	photosynthesis := &aivi.KnowledgeRecord{
		Question:   "What is photosynthesis?",
		Answer:     "Photosynthesis is the process plants use to turn light into chemical energy.",
		Keywords:   []string{"photosynthesis", "plants"},
		Confidence: 1.0,
	}

	t.Run("full phrase, full overlap and keyword", func(t *testing.T) {
		t.Parallel()

		score := aivi.Score("what is photosynthesis", photosynthesis)

		assert.GreaterOrEqual(t, score, 1.0+0.8)
		assert.InDelta(t, 1.0+0.8+0.6, score, 1e-9)
	})

	t.Run("scales by confidence", func(t *testing.T) {
		t.Parallel()

		rec := *photosynthesis
		rec.Confidence = 0.5

		assert.InDelta(t, (1.0+0.8+0.6)*0.5, aivi.Score("what is photosynthesis", &rec), 1e-9)
	})

	t.Run("partial token overlap", func(t *testing.T) {
		t.Parallel()

		// "how" misses, "plants" is a keyword, "photosynthesis" hits both.
		score := aivi.Score("how photosynthesis plants", photosynthesis)

		assert.InDelta(t, 1.0/3.0*0.8+0.6*2, score, 1e-9)
	})

	t.Run("answer phrase match", func(t *testing.T) {
		t.Parallel()

		score := aivi.Score("chemical energy", photosynthesis)

		assert.InDelta(t, 0.4, score, 1e-9)
	})

	t.Run("repeated query tokens count once", func(t *testing.T) {
		t.Parallel()

		once := aivi.Score("plants", photosynthesis)
		twice := aivi.Score("plants plants", photosynthesis)

		assert.InDelta(t, once, twice, 1e-9)
	})

	t.Run("query without tokens scores zero", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, aivi.Score("  ?! ", photosynthesis))
		assert.Zero(t, aivi.Score("", photosynthesis))
	})

	t.Run("nil record scores zero", func(t *testing.T) {
		t.Parallel()

		assert.Zero(t, aivi.Score("photosynthesis", nil))
	})
}

func TestRankRecords(t *testing.T) {
	t.Parallel()

	t.Run("orders by score and drops zero scores", func(t *testing.T) {
		t.Parallel()

		records := []*aivi.KnowledgeRecord{
			{Seq: 1, Question: "What is gravity?", Answer: "A force.", Confidence: 1},
			{Seq: 2, Question: "What is photosynthesis?", Answer: "Plants.", Keywords: []string{"photosynthesis"}, Confidence: 1},
			{Seq: 3, Question: "Define algebra", Answer: "Math.", Confidence: 1},
		}

		got := aivi.RankRecords("photosynthesis", records)

		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].Record.Seq)
	})

	t.Run("ties keep sequence order", func(t *testing.T) {
		t.Parallel()

		records := []*aivi.KnowledgeRecord{
			{Seq: 7, Question: "gravity", Answer: "b", Confidence: 1},
			{Seq: 3, Question: "gravity", Answer: "a", Confidence: 1},
			{Seq: 5, Question: "gravity", Answer: "c", Confidence: 1},
		}

		got := aivi.RankRecords("gravity", records)

		require.Len(t, got, 3)
		assert.Equal(t, int64(3), got[0].Record.Seq)
		assert.Equal(t, int64(5), got[1].Record.Seq)
		assert.Equal(t, int64(7), got[2].Record.Seq)
	})

	t.Run("caps results", func(t *testing.T) {
		t.Parallel()

		var records []*aivi.KnowledgeRecord
		for i := range 25 {
			records = append(records, &aivi.KnowledgeRecord{
				Seq:        int64(i),
				Question:   fmt.Sprintf("energy question %d", i),
				Answer:     "x",
				Confidence: 1,
			})
		}

		got := aivi.RankRecords("energy", records)

		assert.Len(t, got, aivi.MaxSearchResults)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, aivi.RankRecords("anything", nil))
	})
}

func TestProperty_ScoreMonotonicInMatchingTokens(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		tokens := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{3,8}`), 1, 6, rapid.ID[string]).Draw(rt, "tokens")
		confidence := rapid.Float64Range(0.05, 1).Draw(rt, "confidence")
		query := strings.Join(tokens, " ")

		prev := -1.0
		for k := 0; k <= len(tokens); k++ {
			rec := &aivi.KnowledgeRecord{
				Question:   strings.Join(append(append([]string{}, tokens[:k]...), "zzzzzzzzzz"), " "),
				Answer:     "0",
				Confidence: confidence,
			}
			score := aivi.Score(query, rec)
			if score < prev {
				rt.Fatalf("score with %d matching tokens = %v, below %v", k, score, prev)
			}
			prev = score
		}
	})
}

func TestProperty_RankRecordsSortedAndBounded(t *testing.T) {
	t.Parallel()

	words := []string{"atom", "cell", "force", "light", "plant", "wave"}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "records")
		records := make([]*aivi.KnowledgeRecord, 0, n)
		for i := range n {
			records = append(records, &aivi.KnowledgeRecord{
				Seq:        int64(i),
				Question:   strings.Join(rapid.SliceOfN(rapid.SampledFrom(words), 1, 4).Draw(rt, "question"), " "),
				Answer:     rapid.SampledFrom(words).Draw(rt, "answer"),
				Keywords:   rapid.SliceOfN(rapid.SampledFrom(words), 0, 2).Draw(rt, "keywords"),
				Confidence: rapid.Float64Range(0, 1).Draw(rt, "confidence"),
			})
		}
		query := strings.Join(rapid.SliceOfN(rapid.SampledFrom(words), 1, 3).Draw(rt, "query"), " ")

		got := aivi.RankRecords(query, records)

		if len(got) > aivi.MaxSearchResults {
			rt.Fatalf("got %d results, cap is %d", len(got), aivi.MaxSearchResults)
		}
		for i, r := range got {
			if r.Score <= 0 {
				rt.Fatalf("result %d has non-positive score %v", i, r.Score)
			}
			if i == 0 {
				continue
			}
			prev := got[i-1]
			if prev.Score < r.Score {
				rt.Fatalf("result %d out of order: %v < %v", i, prev.Score, r.Score)
			}
			if prev.Score == r.Score && prev.Record.Seq > r.Record.Seq {
				rt.Fatalf("tie at %d not in sequence order: %d > %d", i, prev.Record.Seq, r.Record.Seq)
			}
		}
	})
}

func TestNormalizeQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "what is gravity", aivi.NormalizeQuery("  What IS Gravity \n"))
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"what", "is", "h2o", "s"}, aivi.Tokenize("What is H2O's?"))
	assert.Empty(t, aivi.Tokenize("?!"))
}
