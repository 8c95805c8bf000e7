package mock

import (
	"context"

	"github.com/fwojciec/aivi"
)

var _ aivi.Speaker = (*Speaker)(nil)

// Speaker is a mock implementation of aivi.Speaker.
type Speaker struct {
	SpeakFn func(ctx context.Context, text string) error
}

func (s *Speaker) Speak(ctx context.Context, text string) error {
	return s.SpeakFn(ctx, text)
}
