// Package trafilatura provides the primary article extractor.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/aivi"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements aivi.Extractor at compile time.
var _ aivi.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. When trafilatura finds no main content and
// Fallback is set, the page is handed to Fallback instead.
type Extractor struct {
	Fallback aivi.Extractor
}

// NewExtractor creates a new Extractor with an optional fallback.
func NewExtractor(fallback aivi.Extractor) *Extractor {
	return &Extractor{Fallback: fallback}
}

// Extract returns the article body of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*aivi.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, aivi.Errorf(aivi.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		ExcludeTables:   true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result.ContentNode == nil || strings.TrimSpace(result.ContentText) == "" {
		if e.Fallback != nil {
			return e.Fallback.Extract(rawHTML)
		}
		if err != nil {
			return nil, err
		}
		return nil, aivi.Errorf(aivi.ENOTFOUND, "no main content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &aivi.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
