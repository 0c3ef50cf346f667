// Package fs provides file-based storage for extracted documents.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/semdegroot/apotheek"
)

// Ensure Writer implements apotheek.DocumentWriter at compile time.
var _ apotheek.DocumentWriter = (*Writer)(nil)

// Writer writes extracted documents as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes a document to disk as <base>_clean.json.
func (w *Writer) WriteDocument(ctx context.Context, doc *apotheek.Document, base string) error {
	if base == "" {
		return apotheek.Errorf(apotheek.EINVALID, "base name required")
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, base+"_clean.json")
	return os.WriteFile(fullPath, data, 0644)
}

// MarshalDocument renders a document as indented JSON. HTML characters in
// Dutch text are kept as-is rather than escaped.
func MarshalDocument(doc *apotheek.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
