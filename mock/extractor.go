package mock

import "github.com/fwojciec/aivi"

var _ aivi.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of aivi.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*aivi.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*aivi.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ aivi.Converter = (*Converter)(nil)

// Converter is a mock implementation of aivi.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
