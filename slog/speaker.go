package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/aivi"
)

// Ensure LoggingSpeaker implements aivi.Speaker.
var _ aivi.Speaker = (*LoggingSpeaker)(nil)

// LoggingSpeaker wraps a Speaker with debug logging.
type LoggingSpeaker struct {
	next   aivi.Speaker
	logger *slog.Logger
}

// NewLoggingSpeaker creates a new LoggingSpeaker.
func NewLoggingSpeaker(next aivi.Speaker, logger *slog.Logger) *LoggingSpeaker {
	return &LoggingSpeaker{next: next, logger: logger}
}

func (s *LoggingSpeaker) Speak(ctx context.Context, text string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("speak",
			"chars", len([]rune(text)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Speak(ctx, text)
}
