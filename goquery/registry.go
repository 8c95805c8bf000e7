package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Registry holds result page layouts and picks one for a given page. The
// detector checks markers unique to each engine; unknown pages get the
// fallback layout.
type Registry struct {
	fallback Layout
	layouts  map[string]Layout
}

// NewRegistry creates a Registry with the built-in layouts registered and
// LayoutGeneric as the fallback.
func NewRegistry() *Registry {
	r := &Registry{
		fallback: LayoutGeneric,
		layouts:  make(map[string]Layout),
	}
	r.Register(LayoutDuckDuckGo)
	r.Register(LayoutGoogle)
	return r
}

// Register adds a layout, replacing any layout with the same name.
func (r *Registry) Register(l Layout) {
	r.layouts[l.Name] = l
}

// Get returns the layout registered under name.
func (r *Registry) Get(name string) (Layout, bool) {
	l, ok := r.layouts[name]
	return l, ok
}

// GetForHTML detects the engine from html and returns its layout.
func (r *Registry) GetForHTML(html string) Layout {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return r.fallback
	}
	if name := detect(doc); name != "" {
		if l, ok := r.layouts[name]; ok {
			return l
		}
	}
	return r.fallback
}

func detect(doc *goquery.Document) string {
	switch {
	case hasSelector(doc, ".result__a") || hasSelector(doc, "form#search_form_homepage, input[name='kl']"):
		return LayoutDuckDuckGo.Name
	case hasSelector(doc, "div.g h3") || hasSelector(doc, "#rso"):
		return LayoutGoogle.Name
	}
	return ""
}

// hasSelector checks if the document contains at least one element matching the selector.
func hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
