package aivi

import (
	"context"
	"time"
)

// Sweep defaults for cache maintenance.
const (
	DefaultSweepAge       = 30 * 24 * time.Hour
	DefaultSweepMaxAccess = 5
)

// CacheEntry is a fallback answer remembered for a normalized query.
type CacheEntry struct {
	QueryHash    string    `json:"queryHash"`
	QueryText    string    `json:"queryText"`
	ResponseText string    `json:"responseText"`
	Source       Source    `json:"source"`
	Timestamp    time.Time `json:"timestamp"`
	AccessCount  int       `json:"accessCount"`
}

// CacheService represents the durable search cache. There is at most one
// entry per normalized query.
type CacheService interface {
	// GetEntry returns the entry for query and records the access by
	// incrementing AccessCount and refreshing Timestamp.
	// Returns ENOTFOUND on a miss.
	GetEntry(ctx context.Context, query string) (*CacheEntry, error)

	// PutEntry stores response for query. An existing entry is updated in
	// place: AccessCount grows, Timestamp is refreshed, response and source
	// are replaced.
	PutEntry(ctx context.Context, query, response string, source Source) (*CacheEntry, error)

	// FindEntries retrieves entries matching the filter.
	FindEntries(ctx context.Context, filter CacheFilter) ([]*CacheEntry, error)

	// SweepEntries removes entries last touched before cutoff whose
	// AccessCount is at most maxAccess. Returns the number removed.
	SweepEntries(ctx context.Context, cutoff time.Time, maxAccess int) (int, error)

	// CountEntries returns the number of cached entries.
	CountEntries(ctx context.Context) (int, error)
}

// CacheSortOrder represents the sort order for cache queries.
type CacheSortOrder string

// CacheSortOrder constants for CacheFilter.
const (
	SortByTimestamp   CacheSortOrder = "timestamp"
	SortByAccessCount CacheSortOrder = "access_count"
)

// CacheFilter represents a filter for FindEntries.
type CacheFilter struct {
	Source *Source `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy CacheSortOrder `json:"sortBy"`
}
