package apotheek

import "context"

// Source identifies a retrieved passage that grounded an answer.
type Source struct {
	// Place is the human-readable location: "Title > Section[ > Sub]".
	Place string

	// URL is the source page, or the source file name when the document
	// was scraped from a local file.
	URL string

	Score float32
}

// Answer is a generated reply plus the passages it was grounded on.
type Answer struct {
	Text    string
	Sources []Source
}

// Asker answers natural language questions about the indexed medicine
// documentation. Returns ENOTFOUND when no relevant context exists in the
// index.
type Asker interface {
	Ask(ctx context.Context, question string) (*Answer, error)
}
