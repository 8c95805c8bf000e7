package aivi

// Converter turns clean article HTML into Markdown text suitable for
// splitting into spoken paragraphs.
type Converter interface {
	Convert(html string) (string, error)
}
