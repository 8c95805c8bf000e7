package aivi

import (
	"context"
	"time"
)

// Sources recorded on knowledge records that did not come from a fallback tier.
const (
	RecordSourceBuiltin = "builtin"
	RecordSourceUser    = "user"
)

// DefaultUserConfidence is the confidence given to records a user asks to remember.
const DefaultUserConfidence = 0.8

// KnowledgeRecord is a single question/answer pair in the local knowledge base.
//
// Records are immutable once written except for AccessCount, which grows on
// retrieval, and Confidence, which learning may overwrite. Seq is assigned on
// insert and is the ranking tie-break.
type KnowledgeRecord struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	Category    string    `json:"category"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Keywords    []string  `json:"keywords"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"createdAt"`
	Confidence  float64   `json:"confidence"`
	AccessCount int       `json:"accessCount"`
}

// Validate returns an error if the record contains invalid fields.
func (r *KnowledgeRecord) Validate() error {
	if r.Question == "" {
		return Errorf(EINVALID, "record question required")
	}
	if r.Answer == "" {
		return Errorf(EINVALID, "record answer required")
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return Errorf(EINVALID, "record confidence must be between 0 and 1, got %v", r.Confidence)
	}
	return nil
}

// Topic returns a topic view of the record.
func (r *KnowledgeRecord) Topic() TopicRef {
	return TopicRef{
		RecordID:   r.ID,
		Title:      r.Question,
		Content:    r.Answer,
		Keywords:   r.Keywords,
		Confidence: r.Confidence,
	}
}

// ScoredRecord pairs a record with its relevance to a query.
type ScoredRecord struct {
	Record *KnowledgeRecord `json:"record"`
	Score  float64          `json:"score"`
}

// KnowledgeService represents a service for managing the knowledge base.
type KnowledgeService interface {
	// SearchRecords ranks records against query and returns at most
	// MaxSearchResults, best first. Category narrows the candidates when
	// non-empty. An empty knowledge base returns an empty slice.
	SearchRecords(ctx context.Context, query string, category string) ([]ScoredRecord, error)

	// CreateRecord stores a new record, assigning ID, Seq and CreatedAt.
	CreateRecord(ctx context.Context, rec *KnowledgeRecord) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*KnowledgeRecord, error)

	// FindRecords retrieves records matching the filter in insertion order.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*KnowledgeRecord, error)

	// Categories returns the distinct non-empty categories, sorted.
	Categories(ctx context.Context) ([]string, error)

	// IncrementAccess bumps the access counter of a record.
	// Returns ENOTFOUND if the record does not exist.
	IncrementAccess(ctx context.Context, id string) error

	// UpdateConfidence overwrites the confidence of a record.
	// Returns ENOTFOUND if the record does not exist.
	UpdateConfidence(ctx context.Context, id string, confidence float64) error

	// CountRecords returns the number of records in the knowledge base.
	CountRecords(ctx context.Context) (int, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	// Category matches case-insensitively when set.
	Category *string `json:"category"`
	Source   *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
