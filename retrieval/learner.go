package retrieval

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/aivi"
)

// Promotion thresholds.
const (
	MinPromotedLength  = 100
	PromotedConfidence = 0.7
)

// Categories assigned to promoted records.
const (
	CategoryScience    = "science"
	CategoryHumanities = "humanities"
	CategoryTechnology = "technology"
	CategoryGeneral    = "general"
)

// triggerPhrases mark queries that ask for an explanation worth keeping.
var triggerPhrases = []string{"what is", "explain", "how to", "define"}

// categoryKeywords is ordered by priority; the first category with a
// matching query token wins.
var categoryKeywords = []struct {
	category string
	words    []string
}{
	{CategoryScience, []string{"math", "physics", "chemistry", "biology"}},
	{CategoryHumanities, []string{"history", "literature", "art"}},
	{CategoryTechnology, []string{"programming", "code", "computer"}},
}

// Learner promotes fallback answers into the knowledge base.
type Learner struct {
	Knowledge aivi.KnowledgeService

	// token -> category, built once.
	categories map[string]string
	priority   map[string]int
}

// NewLearner returns a Learner writing into knowledge.
func NewLearner(knowledge aivi.KnowledgeService) *Learner {
	l := &Learner{
		Knowledge:  knowledge,
		categories: make(map[string]string),
		priority:   make(map[string]int),
	}
	for i, c := range categoryKeywords {
		l.priority[c.category] = i
		for _, w := range c.words {
			l.categories[w] = c.category
		}
	}
	return l
}

// ShouldPromote reports whether response, produced by source for query,
// qualifies for promotion.
func (l *Learner) ShouldPromote(query, response string, source aivi.Source) bool {
	if source != aivi.SourceOnline && source != aivi.SourceAI {
		return false
	}
	if utf8.RuneCountInString(response) <= MinPromotedLength {
		return false
	}
	q := strings.ToLower(query)
	for _, p := range triggerPhrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// Category infers the category of query from its tokens.
func (l *Learner) Category(query string) string {
	best := CategoryGeneral
	bestRank := len(categoryKeywords)
	for _, t := range aivi.Tokenize(query) {
		c, ok := l.categories[t]
		if !ok {
			continue
		}
		if r := l.priority[c]; r < bestRank {
			best, bestRank = c, r
		}
	}
	return best
}

// Keywords returns the distinct query words longer than three characters.
func Keywords(query string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range aivi.Tokenize(query) {
		if utf8.RuneCountInString(t) <= 3 || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Learn stores response as a new knowledge record when it qualifies.
// Returns a nil record when the response is not promoted.
func (l *Learner) Learn(ctx context.Context, query, response string, source aivi.Source) (*aivi.KnowledgeRecord, error) {
	if !l.ShouldPromote(query, response, source) {
		return nil, nil
	}
	rec := &aivi.KnowledgeRecord{
		Category:   l.Category(query),
		Question:   strings.TrimSpace(query),
		Answer:     response,
		Keywords:   Keywords(query),
		Source:     string(source),
		Confidence: PromotedConfidence,
	}
	if err := l.Knowledge.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
