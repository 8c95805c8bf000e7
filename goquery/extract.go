package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/aivi"
)

// Hit is one result scraped from a results page.
type Hit struct {
	Title     string
	URL       string
	Snippet   string
	Relevance float64
}

// ExtractHits scrapes results from html using layout. Relative and redirect
// links are resolved against baseURL. Results missing a title, link or
// snippet are skipped, as are duplicate URLs.
func ExtractHits(html, baseURL string, layout Layout) ([]Hit, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, aivi.Errorf(aivi.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, aivi.Errorf(aivi.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var hits []Hit

	doc.Find(layout.Result).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Find(layout.Link).First().Attr("href")
		if !ok || href == "" || isNonHTTPLink(href) {
			return
		}
		link := resolveURL(base, href)
		if link == "" || seen[link] {
			return
		}

		hit := Hit{
			Title:   collapse(sel.Find(layout.Title).First().Text()),
			URL:     link,
			Snippet: collapse(sel.Find(layout.Snippet).First().Text()),
		}
		if hit.Title == "" || hit.Snippet == "" {
			return
		}

		seen[link] = true
		hits = append(hits, hit)
	})

	return hits, nil
}

// resolveURL resolves href against base and unwraps the redirect links
// search engines put around result URLs. Fragments are stripped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)

	// DuckDuckGo wraps targets as /l/?uddg=..., Google as /url?q=...
	for _, param := range []string{"uddg", "q"} {
		if target := resolved.Query().Get(param); target != "" && (resolved.Path == "/l/" || resolved.Path == "/url") {
			if u, err := url.Parse(target); err == nil && u.IsAbs() {
				resolved = u
				break
			}
		}
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
