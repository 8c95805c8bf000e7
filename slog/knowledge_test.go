package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/mock"
	aislog "github.com/fwojciec/aivi/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingKnowledgeService_SearchRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.KnowledgeService{
		SearchRecordsFn: func(ctx context.Context, query, category string) ([]aivi.ScoredRecord, error) {
			return []aivi.ScoredRecord{{Record: &aivi.KnowledgeRecord{ID: "r1"}, Score: 1.8}}, nil
		},
	}

	svc := aislog.NewLoggingKnowledgeService(inner, debugLogger(&buf))
	results, err := svc.SearchRecords(context.Background(), "gravity", "science")

	require.NoError(t, err)
	assert.Len(t, results, 1)
	output := buf.String()
	assert.Contains(t, output, "knowledge search")
	assert.Contains(t, output, "query=gravity")
	assert.Contains(t, output, "category=science")
	assert.Contains(t, output, "count=1")
	assert.Contains(t, output, "top=1.8")
}

func TestLoggingKnowledgeService_CreateRecord(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.KnowledgeService{
		CreateRecordFn: func(ctx context.Context, rec *aivi.KnowledgeRecord) error {
			rec.ID = "abc"
			return nil
		},
	}

	svc := aislog.NewLoggingKnowledgeService(inner, debugLogger(&buf))
	err := svc.CreateRecord(context.Background(), &aivi.KnowledgeRecord{Category: "science", Source: "ai"})

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "level=INFO")
	assert.Contains(t, output, "create record")
	assert.Contains(t, output, "id=abc")
	assert.Contains(t, output, "source=ai")
}

func TestLoggingKnowledgeService_Delegates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var incremented, updated string
	inner := &mock.KnowledgeService{
		FindRecordByIDFn: func(ctx context.Context, id string) (*aivi.KnowledgeRecord, error) {
			return &aivi.KnowledgeRecord{ID: id}, nil
		},
		FindRecordsFn: func(ctx context.Context, filter aivi.RecordFilter) ([]*aivi.KnowledgeRecord, error) {
			return nil, errors.New("locked")
		},
		CategoriesFn: func(ctx context.Context) ([]string, error) {
			return []string{"science"}, nil
		},
		IncrementAccessFn: func(ctx context.Context, id string) error {
			incremented = id
			return nil
		},
		UpdateConfidenceFn: func(ctx context.Context, id string, confidence float64) error {
			updated = id
			return nil
		},
		CountRecordsFn: func(ctx context.Context) (int, error) {
			return 7, nil
		},
	}
	svc := aislog.NewLoggingKnowledgeService(inner, debugLogger(&buf))
	ctx := context.Background()

	rec, err := svc.FindRecordByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.ID)

	_, err = svc.FindRecords(ctx, aivi.RecordFilter{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "err=locked")

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"science"}, cats)

	require.NoError(t, svc.IncrementAccess(ctx, "r2"))
	assert.Equal(t, "r2", incremented)

	require.NoError(t, svc.UpdateConfidence(ctx, "r3", 0.5))
	assert.Equal(t, "r3", updated)

	n, err := svc.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
