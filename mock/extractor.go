package mock

import (
	"github.com/semdegroot/apotheek"
)

var _ apotheek.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of apotheek.Extractor.
type Extractor struct {
	ExtractFn func(html string, source string) (*apotheek.Document, error)
}

func (e *Extractor) Extract(html string, source string) (*apotheek.Document, error) {
	return e.ExtractFn(html, source)
}
