package apotheek

// Extractor extracts the structured content of a medicine page from its
// raw HTML. The source identifier (URL or file path) is passed through
// untouched into the document's URL field; pass "" when unknown.
//
// Extraction never fails on malformed or unexpected markup: subtrees that
// yield no usable text are silently dropped, and a page without headings
// produces a document with an empty title and no sections.
type Extractor interface {
	Extract(html string, source string) (*Document, error)
}
