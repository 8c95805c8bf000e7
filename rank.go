package aivi

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

// MaxSearchResults caps the number of records returned by a knowledge search.
const MaxSearchResults = 10

// Relevance weights. The score is a plain weighted sum so that rankings are
// reproducible.
const (
	WeightQuestionPhrase = 1.0
	WeightTokenOverlap   = 0.8
	WeightKeyword        = 0.6
	WeightAnswerPhrase   = 0.4
)

// NormalizeQuery lower-cases and trims a query. The normalized form is the
// cache key and the phrase used for substring matching.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Tokenize splits text into lower-cased runs of letters and digits.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// uniqueTokens returns the tokens of text with duplicates removed, keeping
// first-occurrence order.
func uniqueTokens(text string) []string {
	tokens := Tokenize(text)
	seen := make(map[string]bool, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Score computes the relevance of rec to query:
//
//   - +1.0 when the normalized query is a substring of the question
//   - +0.8 scaled by the share of query tokens found among question tokens
//   - +0.6 for each query token equal to one of the record's keywords
//   - +0.4 when the normalized query is a substring of the answer
//
// The sum is multiplied by the record's confidence. A query without tokens
// scores zero.
func Score(query string, rec *KnowledgeRecord) float64 {
	normalized := NormalizeQuery(query)
	tokens := uniqueTokens(normalized)
	if len(tokens) == 0 || rec == nil {
		return 0
	}

	var score float64

	question := strings.ToLower(rec.Question)
	if strings.Contains(question, normalized) {
		score += WeightQuestionPhrase
	}

	questionTokens := make(map[string]bool)
	for _, t := range Tokenize(question) {
		questionTokens[t] = true
	}
	var matching int
	for _, t := range tokens {
		if questionTokens[t] {
			matching++
		}
	}
	score += float64(matching) / float64(len(tokens)) * WeightTokenOverlap

	keywords := make(map[string]bool, len(rec.Keywords))
	for _, k := range rec.Keywords {
		keywords[strings.ToLower(strings.TrimSpace(k))] = true
	}
	for _, t := range tokens {
		if keywords[t] {
			score += WeightKeyword
		}
	}

	if strings.Contains(strings.ToLower(rec.Answer), normalized) {
		score += WeightAnswerPhrase
	}

	return score * rec.Confidence
}

// RankRecords scores every record against query and returns those with a
// positive score, best first, capped to MaxSearchResults. Equal scores keep
// insertion order by Seq.
func RankRecords(query string, records []*KnowledgeRecord) []ScoredRecord {
	scored := make([]ScoredRecord, 0, len(records))
	for _, rec := range records {
		if s := Score(query, rec); s > 0 {
			scored = append(scored, ScoredRecord{Record: rec, Score: s})
		}
	}

	slices.SortStableFunc(scored, func(a, b ScoredRecord) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Record.Seq, b.Record.Seq)
	})

	if len(scored) > MaxSearchResults {
		scored = scored[:MaxSearchResults]
	}
	return scored
}
