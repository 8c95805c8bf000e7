// Package htmltomarkdown turns article HTML into speakable Markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/aivi"
)

// Ensure Converter implements aivi.Converter at compile time.
var _ aivi.Converter = (*Converter)(nil)

var (
	imagePattern    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	citationPattern = regexp.MustCompile(`\\?\[(?:\d+|citation needed|note \d+)\\?\]`)
	blankRuns       = regexp.MustCompile(`\n{3,}`)
)

// Converter wraps html-to-markdown. Output keeps paragraph and heading
// structure but drops images, link targets and citation markers, none of
// which read well aloud.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms article HTML into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", aivi.Errorf(aivi.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	md = imagePattern.ReplaceAllString(md, "")
	md = linkPattern.ReplaceAllString(md, "$1")
	md = citationPattern.ReplaceAllString(md, "")
	md = blankRuns.ReplaceAllString(md, "\n\n")

	return strings.TrimSpace(md), nil
}
