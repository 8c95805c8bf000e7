package aivi

import "context"

// RateLimiter paces calls to network collaborators.
type RateLimiter interface {
	// Wait blocks until a call keyed by key is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, key string) error
}
