package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/aivi"
)

// Ensure LoggingAsker implements aivi.Asker.
var _ aivi.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with debug logging.
type LoggingAsker struct {
	next   aivi.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next aivi.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the answer size.
func (a *LoggingAsker) Ask(ctx context.Context, question, preamble string) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("ai answer",
			"question", question,
			"chars", len([]rune(answer)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question, preamble)
}
