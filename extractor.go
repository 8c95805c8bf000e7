package aivi

// ExtractResult holds the main content of an article page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the article body as clean HTML with navigation,
	// infoboxes and footers removed.
	ContentHTML string
}

// Extractor extracts the main content from an article page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
