package http

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/fwojciec/aivi"
)

// DefaultWikiBaseURL is the encyclopedia queried when none is configured.
const DefaultWikiBaseURL = "https://en.wikipedia.org"

// Article selection limits.
const (
	wikiCandidates    = 3
	wikiParagraphs    = 3
	minParagraphChars = 50
)

// Ensure WikiSearcher implements aivi.Searcher at compile time.
var _ aivi.Searcher = (*WikiSearcher)(nil)

// WikiSearcher answers queries with the opening paragraphs of the best
// matching encyclopedia article. Candidates come from the MediaWiki
// OpenSearch API in its XML form.
type WikiSearcher struct {
	fetcher   aivi.Fetcher
	extractor aivi.Extractor
	converter aivi.Converter

	// BaseURL is the MediaWiki site root. Defaults to DefaultWikiBaseURL.
	BaseURL string
}

// NewWikiSearcher creates a new WikiSearcher.
func NewWikiSearcher(fetcher aivi.Fetcher, extractor aivi.Extractor, converter aivi.Converter) *WikiSearcher {
	return &WikiSearcher{
		fetcher:   fetcher,
		extractor: extractor,
		converter: converter,
		BaseURL:   DefaultWikiBaseURL,
	}
}

// wikiHit is one OpenSearch suggestion.
type wikiHit struct {
	Title       string
	URL         string
	Description string
}

// Search looks up query. No matching article is a result with Success false.
func (s *WikiSearcher) Search(ctx context.Context, query string) (*aivi.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, aivi.Errorf(aivi.EINVALID, "search query required")
	}

	hits, err := s.suggest(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return &aivi.SearchResult{Success: false}, nil
	}

	sources := make([]aivi.Reference, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, aivi.Reference{Title: h.Title, URL: h.URL})
	}

	// Fall back to the next candidate when an article has no usable prose.
	var lastErr error
	for _, h := range hits {
		summary, err := s.summarize(ctx, h.URL)
		if err != nil {
			lastErr = err
			continue
		}
		if summary == "" {
			summary = h.Description
		}
		if summary == "" {
			continue
		}
		return &aivi.SearchResult{Success: true, Summary: summary, Sources: sources}, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return &aivi.SearchResult{Success: false, Sources: sources}, nil
}

func (s *WikiSearcher) suggest(ctx context.Context, query string) ([]wikiHit, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("format", "xml")
	params.Set("namespace", "0")
	params.Set("limit", fmt.Sprint(wikiCandidates))
	params.Set("search", query)

	body, err := s.fetcher.Fetch(ctx, strings.TrimRight(s.BaseURL, "/")+"/w/api.php?"+params.Encode())
	if err != nil {
		return nil, err
	}

	return parseOpenSearch(body)
}

// parseOpenSearch reads the SearchSuggestion document returned by the
// OpenSearch API.
func parseOpenSearch(body string) ([]wikiHit, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, fmt.Errorf("parse opensearch response: %w", err)
	}

	var hits []wikiHit
	for _, item := range doc.FindElements("//Item") {
		hit := wikiHit{
			Title:       childText(item, "Text"),
			URL:         childText(item, "Url"),
			Description: childText(item, "Description"),
		}
		if hit.Title == "" || hit.URL == "" {
			continue
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func childText(e *etree.Element, tag string) string {
	if c := e.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

// summarize returns the long paragraphs among the first few of the article.
func (s *WikiSearcher) summarize(ctx context.Context, articleURL string) (string, error) {
	html, err := s.fetcher.Fetch(ctx, articleURL)
	if err != nil {
		return "", err
	}

	extracted, err := s.extractor.Extract(html)
	if err != nil {
		return "", err
	}

	md, err := s.converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", err
	}

	paras := paragraphs(md)
	if len(paras) > wikiParagraphs {
		paras = paras[:wikiParagraphs]
	}
	var keep []string
	for _, p := range paras {
		if utf8.RuneCountInString(p) > minParagraphChars {
			keep = append(keep, p)
		}
	}
	return strings.Join(keep, "\n\n"), nil
}

// paragraphs splits Markdown into prose paragraphs, skipping headings, list
// items, quotes and table rows.
func paragraphs(md string) []string {
	var out []string
	for _, block := range strings.Split(md, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		switch block[0] {
		case '#', '-', '*', '|', '>', '`':
			continue
		}
		out = append(out, strings.Join(strings.Fields(block), " "))
	}
	return out
}
