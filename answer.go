package aivi

import (
	"context"
	"errors"
	"strings"
)

// Source tags the tier that produced an answer.
type Source string

// Source constants.
const (
	SourceNone    Source = ""
	SourceOffline Source = "offline"
	SourceCache   Source = "cache"
	SourceOnline  Source = "online"
	SourceAI      Source = "ai"
)

// Stage is one step of the fallback lookup.
type Stage string

// Stage constants.
const (
	StageOffline Stage = "offline"
	StageCache   Stage = "cache"
	StageOnline  Stage = "online"
	StageAI      Stage = "ai"
)

// Source returns the source tag carried by answers produced at this stage.
func (s Stage) Source() Source {
	return Source(s)
}

// Strategy selects the order in which fallback stages are consulted.
type Strategy string

// Strategy constants.
const (
	StrategyOfflineFirst Strategy = "offline_first"
	StrategyOnlineFirst  Strategy = "online_first"
	StrategyAIOnly       Strategy = "ai_only"
)

// DefaultStrategy is used when no strategy is given.
const DefaultStrategy = StrategyOfflineFirst

// Stages returns the ordered stages for the strategy.
// An empty strategy behaves like DefaultStrategy.
func (s Strategy) Stages() []Stage {
	switch s {
	case StrategyOnlineFirst:
		return []Stage{StageOnline, StageOffline, StageAI}
	case StrategyAIOnly:
		return []Stage{StageAI}
	default:
		return []Stage{StageOffline, StageCache, StageOnline, StageAI}
	}
}

// ParseStrategy parses a strategy name. Spoken forms such as
// "offline first" and the legacy "google_first" alias are accepted.
func ParseStrategy(s string) (Strategy, error) {
	norm := strings.NewReplacer(" ", "_", "-", "_").Replace(NormalizeQuery(s))
	switch norm {
	case "", "offline_first", "offline":
		return StrategyOfflineFirst, nil
	case "online_first", "google_first", "online":
		return StrategyOnlineFirst, nil
	case "ai_only", "ai":
		return StrategyAIOnly, nil
	}
	return "", Errorf(EINVALID, "unknown search strategy %q", s)
}

// Reference is a source document cited by an online answer.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// StageError records why a stage produced no usable result.
type StageError struct {
	Stage Stage `json:"stage"`
	Err   error `json:"-"`
}

func (e StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e StageError) Unwrap() error {
	return e.Err
}

// Answer is the terminal result of a fallback lookup.
type Answer struct {
	Query string `json:"query"`
	Text  string `json:"text"`

	// Origin is the utterance Query was derived from. Equal to Query unless
	// the caller rewrote it.
	Origin string `json:"origin,omitempty"`

	// Source is SourceNone when every stage was exhausted.
	Source Source `json:"source"`

	// Confidence is set for offline answers.
	Confidence float64 `json:"confidence,omitempty"`

	// Record is the knowledge record behind an offline answer.
	Record *KnowledgeRecord `json:"record,omitempty"`

	// References lists the documents behind an online answer.
	References []Reference `json:"references,omitempty"`

	// Errors holds stage-level failures for diagnostics.
	Errors []StageError `json:"-"`
}

// Found reports whether any stage produced a usable result.
func (a *Answer) Found() bool {
	return a != nil && a.Source != SourceNone
}

// Err returns ENOTFOUND joined with the stage errors when nothing was found.
func (a *Answer) Err() error {
	if a.Found() {
		return nil
	}
	errs := []error{Errorf(ENOTFOUND, "no answer found for %q", a.Query)}
	for _, e := range a.Errors {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// AnswerService answers questions through the fallback lookup.
type AnswerService interface {
	// Search answers query using strategy, or the configured default when
	// strategy is empty. An exhausted lookup is not an error: the returned
	// answer is not Found and carries the stage errors.
	Search(ctx context.Context, query string, strategy Strategy) (*Answer, error)

	// SearchFor is Search for a query derived from origin, the utterance the
	// user actually said. Stages look up query; learning judges origin.
	SearchFor(ctx context.Context, query, origin string, strategy Strategy) (*Answer, error)
}
