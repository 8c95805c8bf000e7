package retrieval

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/aivi"
	"golang.org/x/sync/errgroup"
)

// Warmer runs a batch of queries through an Orchestrator so their answers
// land in the cache and, when they qualify, in the knowledge base.
type Warmer struct {
	Orchestrator *Orchestrator
	Strategy     aivi.Strategy
	Concurrency  int
}

// WarmResult holds the outcome of a warm run.
type WarmResult struct {
	Found    int
	Missed   int
	Failed   int
	BySource map[aivi.Source]int
}

// ProgressEvent reports progress during a warm run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Query     string
	Source    aivi.Source
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting warm progress.
type ProgressFunc func(event ProgressEvent)

// Warm answers every non-blank query. Individual failures are counted, not
// returned; the error is non-nil only when ctx is canceled.
func (w *Warmer) Warm(ctx context.Context, queries []string, progress ProgressFunc) (*WarmResult, error) {
	var batch []string
	seen := make(map[string]bool)
	for _, q := range queries {
		key := aivi.NormalizeQuery(q)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		batch = append(batch, strings.TrimSpace(q))
	}

	concurrency := w.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	total := len(batch)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	result := &WarmResult{BySource: make(map[aivi.Source]int)}
	var mu sync.Mutex
	var completed int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, q := range batch {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			ans, err := w.Orchestrator.Search(gctx, q, w.Strategy)

			mu.Lock()
			completed++
			done := completed
			switch {
			case err != nil:
				result.Failed++
			case ans.Found():
				result.Found++
				result.BySource[ans.Source]++
			default:
				result.Missed++
				err = ans.Err()
			}

			if progress != nil {
				event := ProgressEvent{Type: ProgressCompleted, Completed: done, Total: total, Query: q}
				if err != nil {
					event.Type = ProgressFailed
					event.Error = err
				} else {
					event.Source = ans.Source
				}
				progress(event)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return result, nil
}
