package mock

import (
	"context"

	"github.com/fwojciec/aivi"
)

var _ aivi.Asker = (*Asker)(nil)

// Asker is a mock implementation of aivi.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question, preamble string) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question, preamble string) (string, error) {
	return a.AskFn(ctx, question, preamble)
}
