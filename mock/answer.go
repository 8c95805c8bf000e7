package mock

import (
	"context"

	"github.com/fwojciec/aivi"
)

var _ aivi.AnswerService = (*AnswerService)(nil)

// AnswerService is a mock implementation of aivi.AnswerService.
type AnswerService struct {
	SearchFn    func(ctx context.Context, query string, strategy aivi.Strategy) (*aivi.Answer, error)
	SearchForFn func(ctx context.Context, query, origin string, strategy aivi.Strategy) (*aivi.Answer, error)
}

func (s *AnswerService) Search(ctx context.Context, query string, strategy aivi.Strategy) (*aivi.Answer, error) {
	return s.SearchFn(ctx, query, strategy)
}

func (s *AnswerService) SearchFor(ctx context.Context, query, origin string, strategy aivi.Strategy) (*aivi.Answer, error) {
	return s.SearchForFn(ctx, query, origin, strategy)
}
