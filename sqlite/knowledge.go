package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/aivi"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ aivi.KnowledgeService = (*KnowledgeService)(nil)

const recordColumns = "seq, id, category, question, answer, keywords, source, created_at, confidence, access_count"

// KnowledgeService implements aivi.KnowledgeService using SQLite.
type KnowledgeService struct {
	db *DB
}

// NewKnowledgeService creates a new KnowledgeService.
func NewKnowledgeService(db *DB) *KnowledgeService {
	return &KnowledgeService{db: db}
}

// SearchRecords ranks the stored records against query. Ranking runs in Go
// over every candidate; the store is small enough that no index is needed.
func (s *KnowledgeService) SearchRecords(ctx context.Context, query string, category string) ([]aivi.ScoredRecord, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM knowledge_records)").Scan(&exists); err != nil {
		return nil, err
	}
	if !exists || len(aivi.Tokenize(query)) == 0 {
		return []aivi.ScoredRecord{}, nil
	}

	filter := aivi.RecordFilter{}
	if category != "" {
		filter.Category = &category
	}
	records, err := s.FindRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	return aivi.RankRecords(query, records), nil
}

// CreateRecord creates a new record.
func (s *KnowledgeService) CreateRecord(ctx context.Context, rec *aivi.KnowledgeRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	keywords, err := json.Marshal(nonNil(rec.Keywords))
	if err != nil {
		return fmt.Errorf("failed to encode keywords: %w", err)
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = s.db.now()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO knowledge_records (id, category, question, answer, keywords, source, created_at, confidence, access_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Category, rec.Question, rec.Answer, string(keywords), rec.Source,
		rec.CreatedAt.Format(time.RFC3339), rec.Confidence, rec.AccessCount)
	if err != nil {
		return err
	}

	rec.Seq, err = res.LastInsertId()
	return err
}

// FindRecordByID retrieves a record by ID.
func (s *KnowledgeService) FindRecordByID(ctx context.Context, id string) (*aivi.KnowledgeRecord, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+recordColumns+" FROM knowledge_records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, aivi.Errorf(aivi.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter in insertion order.
func (s *KnowledgeService) FindRecords(ctx context.Context, filter aivi.RecordFilter) ([]*aivi.KnowledgeRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM knowledge_records WHERE 1=1")

	if filter.Category != nil {
		query.WriteString(" AND category = ? COLLATE NOCASE")
		args = append(args, *filter.Category)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY seq ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*aivi.KnowledgeRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Categories returns the distinct non-empty categories, lower-cased and sorted.
func (s *KnowledgeService) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT lower(category) AS c
		FROM knowledge_records
		WHERE category != ''
		ORDER BY c
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// IncrementAccess bumps the access counter of a record in one statement.
func (s *KnowledgeService) IncrementAccess(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE knowledge_records SET access_count = access_count + 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, "record not found")
}

// UpdateConfidence overwrites the confidence of a record.
func (s *KnowledgeService) UpdateConfidence(ctx context.Context, id string, confidence float64) error {
	if confidence < 0 || confidence > 1 {
		return aivi.Errorf(aivi.EINVALID, "confidence must be between 0 and 1, got %v", confidence)
	}
	res, err := s.db.ExecContext(ctx, "UPDATE knowledge_records SET confidence = ? WHERE id = ?", confidence, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "record not found")
}

// CountRecords returns the number of records.
func (s *KnowledgeService) CountRecords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM knowledge_records").Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*aivi.KnowledgeRecord, error) {
	var rec aivi.KnowledgeRecord
	var keywords, createdAt string

	if err := row.Scan(&rec.Seq, &rec.ID, &rec.Category, &rec.Question, &rec.Answer, &keywords,
		&rec.Source, &createdAt, &rec.Confidence, &rec.AccessCount); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(keywords), &rec.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}

	var err error
	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func requireAffected(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return aivi.Errorf(aivi.ENOTFOUND, "%s", msg)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
