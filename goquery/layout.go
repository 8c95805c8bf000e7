// Package goquery provides a web search provider that scrapes HTML result
// pages with CSS selectors.
package goquery

// Layout names the CSS selectors that locate results on a search results
// page. Title, Link and Snippet are evaluated inside each Result element.
type Layout struct {
	Name    string
	Result  string
	Title   string
	Link    string
	Snippet string
}

// Built-in result page layouts.
var (
	// LayoutDuckDuckGo matches the no-script DuckDuckGo results page.
	LayoutDuckDuckGo = Layout{
		Name:    "duckduckgo",
		Result:  ".result",
		Title:   ".result__a",
		Link:    "a.result__a[href]",
		Snippet: ".result__snippet",
	}

	// LayoutGoogle matches the classic Google results markup.
	LayoutGoogle = Layout{
		Name:    "google",
		Result:  "div.g",
		Title:   "h3",
		Link:    "a[href]",
		Snippet: "div.VwiC3b, span.aCOpRe",
	}

	// LayoutGeneric matches pages that mark results up as list items or
	// articles with a heading link and a paragraph.
	LayoutGeneric = Layout{
		Name:    "generic",
		Result:  "li.result, article, ol > li",
		Title:   "h2, h3, a",
		Link:    "a[href]",
		Snippet: "p",
	}
)
