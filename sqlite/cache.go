package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/aivi"
)

// Compile-time interface verification.
var _ aivi.CacheService = (*CacheService)(nil)

const entryColumns = "query_hash, query_text, response_text, source, timestamp, access_count"

// CacheService implements aivi.CacheService using SQLite.
type CacheService struct {
	db *DB
}

// NewCacheService creates a new CacheService.
func NewCacheService(db *DB) *CacheService {
	return &CacheService{db: db}
}

// GetEntry returns the entry for the normalized query and records the hit.
// The lookup and the counter update are one statement.
func (s *CacheService) GetEntry(ctx context.Context, query string) (*aivi.CacheEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE search_cache
		SET access_count = access_count + 1, timestamp = ?
		WHERE query_hash = ?
		RETURNING `+entryColumns,
		s.db.now().Format(time.RFC3339), HashQuery(query))

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, aivi.Errorf(aivi.ENOTFOUND, "cache entry not found")
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PutEntry inserts or updates the entry for the normalized query.
func (s *CacheService) PutEntry(ctx context.Context, query, response string, source aivi.Source) (*aivi.CacheEntry, error) {
	normalized := aivi.NormalizeQuery(query)
	if normalized == "" {
		return nil, aivi.Errorf(aivi.EINVALID, "cache query required")
	}
	if response == "" {
		return nil, aivi.Errorf(aivi.EINVALID, "cache response required")
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO search_cache (query_hash, query_text, response_text, source, timestamp, access_count)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(query_hash) DO UPDATE SET
			response_text = excluded.response_text,
			source = excluded.source,
			timestamp = excluded.timestamp,
			access_count = search_cache.access_count + 1
		RETURNING `+entryColumns,
		HashQuery(normalized), normalized, response, string(source), s.db.now().Format(time.RFC3339))

	return scanEntry(row)
}

// FindEntries retrieves entries matching the filter, most recent first unless
// sorted by access count.
func (s *CacheService) FindEntries(ctx context.Context, filter aivi.CacheFilter) ([]*aivi.CacheEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + entryColumns + " FROM search_cache WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}

	switch filter.SortBy {
	case aivi.SortByAccessCount:
		query.WriteString(" ORDER BY access_count DESC, query_text ASC")
	default:
		query.WriteString(" ORDER BY timestamp DESC, query_text ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*aivi.CacheEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SweepEntries removes stale, rarely used entries.
func (s *CacheService) SweepEntries(ctx context.Context, cutoff time.Time, maxAccess int) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM search_cache WHERE timestamp < ? AND access_count <= ?",
		cutoff.UTC().Format(time.RFC3339), maxAccess)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// CountEntries returns the number of cached entries.
func (s *CacheService) CountEntries(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM search_cache").Scan(&n)
	return n, err
}

func scanEntry(row scanner) (*aivi.CacheEntry, error) {
	var entry aivi.CacheEntry
	var source, ts string

	if err := row.Scan(&entry.QueryHash, &entry.QueryText, &entry.ResponseText, &source, &ts, &entry.AccessCount); err != nil {
		return nil, err
	}
	entry.Source = aivi.Source(source)

	var err error
	entry.Timestamp, err = parseRFC3339(ts, "timestamp")
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
