// Package readability provides the fallback article extractor.
package readability

import (
	"strings"

	"github.com/fwojciec/aivi"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements aivi.Extractor at compile time.
var _ aivi.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability. It is more forgiving than trafilatura on
// short pages and is used when the primary extractor finds no content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article body of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*aivi.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, aivi.Errorf(aivi.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, aivi.Errorf(aivi.ENOTFOUND, "no readable content")
	}

	return &aivi.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
