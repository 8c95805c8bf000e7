package mock

import (
	"context"

	"github.com/fwojciec/aivi"
)

var _ aivi.KnowledgeService = (*KnowledgeService)(nil)

// KnowledgeService is a mock implementation of aivi.KnowledgeService.
type KnowledgeService struct {
	SearchRecordsFn    func(ctx context.Context, query, category string) ([]aivi.ScoredRecord, error)
	CreateRecordFn     func(ctx context.Context, rec *aivi.KnowledgeRecord) error
	FindRecordByIDFn   func(ctx context.Context, id string) (*aivi.KnowledgeRecord, error)
	FindRecordsFn      func(ctx context.Context, filter aivi.RecordFilter) ([]*aivi.KnowledgeRecord, error)
	CategoriesFn       func(ctx context.Context) ([]string, error)
	IncrementAccessFn  func(ctx context.Context, id string) error
	UpdateConfidenceFn func(ctx context.Context, id string, confidence float64) error
	CountRecordsFn     func(ctx context.Context) (int, error)
}

func (s *KnowledgeService) SearchRecords(ctx context.Context, query, category string) ([]aivi.ScoredRecord, error) {
	return s.SearchRecordsFn(ctx, query, category)
}

func (s *KnowledgeService) CreateRecord(ctx context.Context, rec *aivi.KnowledgeRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *KnowledgeService) FindRecordByID(ctx context.Context, id string) (*aivi.KnowledgeRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *KnowledgeService) FindRecords(ctx context.Context, filter aivi.RecordFilter) ([]*aivi.KnowledgeRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *KnowledgeService) Categories(ctx context.Context) ([]string, error) {
	return s.CategoriesFn(ctx)
}

func (s *KnowledgeService) IncrementAccess(ctx context.Context, id string) error {
	return s.IncrementAccessFn(ctx, id)
}

func (s *KnowledgeService) UpdateConfidence(ctx context.Context, id string, confidence float64) error {
	return s.UpdateConfidenceFn(ctx, id, confidence)
}

func (s *KnowledgeService) CountRecords(ctx context.Context) (int, error) {
	return s.CountRecordsFn(ctx)
}
