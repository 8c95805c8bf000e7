package aivi

import "context"

// Speaker renders response text as speech.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}
