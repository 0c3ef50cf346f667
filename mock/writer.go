package mock

import (
	"context"

	"github.com/semdegroot/apotheek"
)

var _ apotheek.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of apotheek.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *apotheek.Document, base string) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *apotheek.Document, base string) error {
	return w.WriteDocumentFn(ctx, doc, base)
}
