// Package slog provides logging decorators for the aivi service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/aivi"
)

// Ensure LoggingKnowledgeService implements aivi.KnowledgeService.
var _ aivi.KnowledgeService = (*LoggingKnowledgeService)(nil)

// LoggingKnowledgeService wraps a KnowledgeService with debug logging.
// Reads log at debug level, writes at info level.
type LoggingKnowledgeService struct {
	next   aivi.KnowledgeService
	logger *slog.Logger
}

// NewLoggingKnowledgeService creates a new LoggingKnowledgeService.
func NewLoggingKnowledgeService(next aivi.KnowledgeService, logger *slog.Logger) *LoggingKnowledgeService {
	return &LoggingKnowledgeService{next: next, logger: logger}
}

// SearchRecords delegates to the wrapped service and logs the result count
// and best score.
func (s *LoggingKnowledgeService) SearchRecords(ctx context.Context, query, category string) (results []aivi.ScoredRecord, err error) {
	defer func(begin time.Time) {
		var top float64
		if len(results) > 0 {
			top = results[0].Score
		}
		s.logger.Debug("knowledge search",
			"query", query,
			"category", category,
			"count", len(results),
			"top", top,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchRecords(ctx, query, category)
}

func (s *LoggingKnowledgeService) CreateRecord(ctx context.Context, rec *aivi.KnowledgeRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create record",
			"id", rec.ID,
			"category", rec.Category,
			"source", rec.Source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecord(ctx, rec)
}

func (s *LoggingKnowledgeService) FindRecordByID(ctx context.Context, id string) (*aivi.KnowledgeRecord, error) {
	return s.next.FindRecordByID(ctx, id)
}

func (s *LoggingKnowledgeService) FindRecords(ctx context.Context, filter aivi.RecordFilter) (recs []*aivi.KnowledgeRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"count", len(recs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

func (s *LoggingKnowledgeService) Categories(ctx context.Context) ([]string, error) {
	return s.next.Categories(ctx)
}

func (s *LoggingKnowledgeService) IncrementAccess(ctx context.Context, id string) error {
	return s.next.IncrementAccess(ctx, id)
}

func (s *LoggingKnowledgeService) UpdateConfidence(ctx context.Context, id string, confidence float64) (err error) {
	defer func() {
		s.logger.Info("update confidence", "id", id, "confidence", confidence, "err", err)
	}()
	return s.next.UpdateConfidence(ctx, id, confidence)
}

func (s *LoggingKnowledgeService) CountRecords(ctx context.Context) (int, error) {
	return s.next.CountRecords(ctx)
}
