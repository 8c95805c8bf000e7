package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/aivi"
)

// DefaultEndpoint is the results page queried when none is configured.
const DefaultEndpoint = "https://html.duckduckgo.com/html/"

// DefaultMaxResults caps the hits considered per search.
const DefaultMaxResults = 5

// Ensure WebSearcher implements aivi.Searcher at compile time.
var _ aivi.Searcher = (*WebSearcher)(nil)

// WebSearcher answers queries from a web search results page. The page
// layout is detected per response through the registry.
type WebSearcher struct {
	fetcher  aivi.Fetcher
	registry *Registry

	// Endpoint receives the query in its q parameter.
	Endpoint   string
	MaxResults int
}

// NewWebSearcher creates a new WebSearcher.
func NewWebSearcher(fetcher aivi.Fetcher, registry *Registry) *WebSearcher {
	if registry == nil {
		registry = NewRegistry()
	}
	return &WebSearcher{
		fetcher:    fetcher,
		registry:   registry,
		Endpoint:   DefaultEndpoint,
		MaxResults: DefaultMaxResults,
	}
}

// Search fetches the results page for query and summarizes the best hits.
// A page without results is a result with Success false.
func (s *WebSearcher) Search(ctx context.Context, query string) (*aivi.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, aivi.Errorf(aivi.EINVALID, "search query required")
	}

	endpoint, err := url.Parse(s.Endpoint)
	if err != nil {
		return nil, aivi.Errorf(aivi.EINVALID, "invalid search endpoint: %v", err)
	}
	params := endpoint.Query()
	params.Set("q", query)
	endpoint.RawQuery = params.Encode()

	html, err := s.fetcher.Fetch(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	hits, err := ExtractHits(html, endpoint.String(), s.registry.GetForHTML(html))
	if err != nil {
		return nil, err
	}
	if s.MaxResults > 0 && len(hits) > s.MaxResults {
		hits = hits[:s.MaxResults]
	}
	if len(hits) == 0 {
		return &aivi.SearchResult{Success: false}, nil
	}

	hits = RankHits(query, hits)

	sources := make([]aivi.Reference, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, aivi.Reference{Title: h.Title, URL: h.URL})
	}

	return &aivi.SearchResult{
		Success: true,
		Summary: Summarize(query, hits),
		Sources: sources,
	}, nil
}
