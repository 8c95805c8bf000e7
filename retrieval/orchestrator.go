// Package retrieval answers questions by consulting the local knowledge
// base, the search cache, an online search provider and an AI provider in
// turn, and feeds fallback answers back into the local stores.
package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/aivi"
)

// Stage timeouts.
const (
	DefaultOnlineTimeout = 15 * time.Second
	DefaultAITimeout     = 30 * time.Second
)

// Config holds the tunables of an Orchestrator.
type Config struct {
	// Strategy is used when Search is called without one.
	Strategy aivi.Strategy

	// ScoreFloor is the score the top offline record must exceed.
	ScoreFloor float64

	OnlineTimeout time.Duration
	AITimeout     time.Duration

	// RetryDelays lists the waits between attempts of a network stage.
	// Empty means a single attempt.
	RetryDelays []time.Duration

	// Preamble frames AI answers. Empty uses aivi.DefaultPreamble.
	Preamble string
}

// DefaultConfig returns the configuration used by the CLI.
func DefaultConfig() Config {
	return Config{
		Strategy:      aivi.DefaultStrategy,
		OnlineTimeout: DefaultOnlineTimeout,
		AITimeout:     DefaultAITimeout,
		RetryDelays:   DefaultRetryDelays(),
		Preamble:      aivi.DefaultPreamble,
	}
}

var _ aivi.AnswerService = (*Orchestrator)(nil)

// Orchestrator runs the fallback lookup. Any collaborator may be nil; a
// missing collaborator makes its stage unusable.
type Orchestrator struct {
	Knowledge aivi.KnowledgeService
	Cache     aivi.CacheService
	Searcher  aivi.Searcher
	Asker     aivi.Asker
	Learner   *Learner
	Limiter   aivi.RateLimiter
	Config    Config
	Logger    *slog.Logger
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Search answers query. Stages run in the order given by strategy and the
// first usable result is returned. When every stage is exhausted the answer
// has Source aivi.SourceNone and carries the stage errors. Search itself only
// fails on an empty query.
func (o *Orchestrator) Search(ctx context.Context, query string, strategy aivi.Strategy) (*aivi.Answer, error) {
	return o.SearchFor(ctx, query, query, strategy)
}

// SearchFor is Search for a query rewritten from origin. Stages and the
// cache use query; the learner judges and stores origin. An empty origin
// falls back to query.
func (o *Orchestrator) SearchFor(ctx context.Context, query, origin string, strategy aivi.Strategy) (*aivi.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, aivi.Errorf(aivi.EINVALID, "query required")
	}
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = query
	}
	if strategy == "" {
		strategy = o.Config.Strategy
	}

	ans := &aivi.Answer{Query: query, Origin: origin}
	for _, stage := range strategy.Stages() {
		var ok bool
		var err error
		switch stage {
		case aivi.StageOffline:
			ok, err = o.offline(ctx, ans)
		case aivi.StageCache:
			ok, err = o.cache(ctx, ans)
		case aivi.StageOnline:
			ok, err = o.online(ctx, ans)
		case aivi.StageAI:
			ok, err = o.ai(ctx, ans)
		}
		if ok {
			o.logger().Debug("answer found", "query", query, "source", ans.Source)
			return ans, nil
		}
		if err != nil {
			o.logger().Debug("stage failed", "stage", stage, "query", query, "err", err)
			ans.Errors = append(ans.Errors, aivi.StageError{Stage: stage, Err: err})
		}
		if ctx.Err() != nil {
			break
		}
	}

	o.logger().Debug("no answer", "query", query, "errors", len(ans.Errors))
	return ans, nil
}

func (o *Orchestrator) offline(ctx context.Context, ans *aivi.Answer) (bool, error) {
	if o.Knowledge == nil {
		return false, notConfigured("knowledge base")
	}
	results, err := o.Knowledge.SearchRecords(ctx, ans.Query, "")
	if err != nil {
		return false, err
	}
	if len(results) == 0 || results[0].Score <= o.Config.ScoreFloor {
		return false, nil
	}

	rec := results[0].Record
	if err := o.Knowledge.IncrementAccess(ctx, rec.ID); err != nil {
		o.logger().Warn("increment access", "id", rec.ID, "err", err)
	}
	ans.Text = rec.Answer
	ans.Source = aivi.SourceOffline
	ans.Confidence = rec.Confidence
	ans.Record = rec
	return true, nil
}

func (o *Orchestrator) cache(ctx context.Context, ans *aivi.Answer) (bool, error) {
	if o.Cache == nil {
		return false, notConfigured("cache")
	}
	entry, err := o.Cache.GetEntry(ctx, ans.Query)
	if aivi.ErrorCode(err) == aivi.ENOTFOUND {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if entry.ResponseText == "" {
		return false, nil
	}
	ans.Text = entry.ResponseText
	ans.Source = aivi.SourceCache
	return true, nil
}

func (o *Orchestrator) online(ctx context.Context, ans *aivi.Answer) (bool, error) {
	if o.Searcher == nil {
		return false, notConfigured("online search")
	}
	res, err := stageCall(ctx, o, aivi.StageOnline, o.Config.OnlineTimeout, func(ctx context.Context) (*aivi.SearchResult, error) {
		return o.Searcher.Search(ctx, ans.Query)
	})
	if err != nil {
		return false, err
	}
	if !res.Usable() {
		return false, aivi.Errorf(aivi.ENOTFOUND, "no usable search result")
	}
	ans.Text = res.Summary
	ans.Source = aivi.SourceOnline
	ans.References = res.Sources
	o.remember(ctx, ans)
	return true, nil
}

func (o *Orchestrator) ai(ctx context.Context, ans *aivi.Answer) (bool, error) {
	if o.Asker == nil {
		return false, notConfigured("AI provider")
	}
	preamble := o.Config.Preamble
	if preamble == "" {
		preamble = aivi.DefaultPreamble
	}
	text, err := stageCall(ctx, o, aivi.StageAI, o.Config.AITimeout, func(ctx context.Context) (string, error) {
		return o.Asker.Ask(ctx, ans.Query, preamble)
	})
	if err != nil {
		return false, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return false, aivi.Errorf(aivi.ENOTFOUND, "empty AI answer")
	}
	ans.Text = text
	ans.Source = aivi.SourceAI
	o.remember(ctx, ans)
	return true, nil
}

// stageCall runs a network stage under its timeout, pacing and retrying the
// call. A timeout is reported as EUNAVAILABLE.
func stageCall[T any](ctx context.Context, o *Orchestrator, stage aivi.Stage, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if o.Limiter != nil {
		if err := o.Limiter.Wait(ctx, string(stage)); err != nil {
			return zero, unavailable(stage, err)
		}
	}

	logf := func(format string, args ...any) {
		o.logger().Debug("stage retry", "stage", stage, "detail", fmt.Sprintf(format, args...))
	}
	v, err := withRetry(ctx, string(stage), fn, logf, o.Config.RetryDelays)
	if err != nil {
		return zero, unavailable(stage, err)
	}
	return v, nil
}

// remember caches a fallback answer and offers it to the learner. Failures
// are logged and never affect the answer.
func (o *Orchestrator) remember(ctx context.Context, ans *aivi.Answer) {
	if o.Cache != nil {
		if _, err := o.Cache.PutEntry(ctx, ans.Query, ans.Text, ans.Source); err != nil {
			o.logger().Warn("cache answer", "query", ans.Query, "err", err)
		}
	}
	if o.Learner != nil {
		rec, err := o.Learner.Learn(ctx, ans.Origin, ans.Text, ans.Source)
		if err != nil {
			o.logger().Warn("promote answer", "query", ans.Origin, "err", err)
		} else if rec != nil {
			o.logger().Info("promoted answer", "query", ans.Origin, "category", rec.Category, "id", rec.ID)
		}
	}
}

func notConfigured(what string) error {
	return aivi.Errorf(aivi.EUNAVAILABLE, "%s not configured", what)
}

// unavailable keeps application errors and maps anything else, timeouts
// included, to EUNAVAILABLE.
func unavailable(stage aivi.Stage, err error) error {
	var e *aivi.Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return aivi.Errorf(aivi.EUNAVAILABLE, "%s timed out", stage)
	}
	return aivi.Errorf(aivi.EUNAVAILABLE, "%s: %v", stage, err)
}
