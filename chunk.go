package apotheek

import (
	"context"
	"fmt"
)

// Chunk is a retrieval unit derived from one paragraph or one list item of
// a document, optimized for embedding and semantic search.
type Chunk struct {
	ID string `json:"id,omitempty"`

	// Text is the embedded content: the raw text prefixed with its place
	// in the document ("Titel: ... | Sectie: ... || ...").
	Text string `json:"text"`

	// RawText is the content without the context prefix; this is what is
	// shown to the language model and the user.
	RawText string `json:"raw_text"`

	Title      string `json:"title"`
	Section    string `json:"section"`
	Subsection string `json:"subsection,omitempty"`

	// BlockType is "paragraph" or "list_item".
	BlockType string `json:"block_type"`

	URL        string `json:"url,omitempty"`
	SourceFile string `json:"source_file,omitempty"`

	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.Text == "" {
		return Errorf(EINVALID, "chunk text required")
	}
	if c.RawText == "" {
		return Errorf(EINVALID, "chunk raw text required")
	}
	return nil
}

// Chunk block type constants.
const (
	ChunkParagraph = "paragraph"
	ChunkListItem  = "list_item"
)

// FlattenDocument converts a document into retrieval chunks: one chunk per
// paragraph and one per list item, each carrying its title/section context
// in the embedded text. Empty texts yield no chunk. sourceFile records the
// clean JSON file the document was loaded from and may be "".
func FlattenDocument(doc *Document, sourceFile string) []Chunk {
	var chunks []Chunk

	add := func(text, section, subsection, blockType string) {
		raw := NormalizeSpace(text)
		if raw == "" {
			return
		}
		ctx := fmt.Sprintf("Titel: %s | Sectie: %s", doc.Title, section)
		if subsection != "" {
			ctx += " > " + subsection
		}
		chunks = append(chunks, Chunk{
			Text:       ctx + " || " + raw,
			RawText:    raw,
			Title:      doc.Title,
			Section:    section,
			Subsection: subsection,
			BlockType:  blockType,
			URL:        doc.URL,
			SourceFile: sourceFile,
		})
	}

	addBlocks := func(blocks []Block, section, subsection string) {
		for _, b := range blocks {
			switch b.Type {
			case BlockParagraph:
				add(b.Text, section, subsection, ChunkParagraph)
			case BlockList:
				for _, it := range b.Items {
					add(it, section, subsection, ChunkListItem)
				}
			}
		}
	}

	for _, sec := range doc.Sections {
		addBlocks(sec.Blocks, sec.Title, "")
		for _, sub := range sec.Subsections {
			addBlocks(sub.Blocks, sec.Title, sub.Title)
		}
	}
	return chunks
}

// Embedder computes embedding vectors for documents and queries.
// Implementations must embed documents and queries with the same model but
// may use different task framing for each (the retrieval document/query
// distinction).
type Embedder interface {
	// EmbedDocuments embeds passages for indexing. The result has one
	// normalized vector per input, in order.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a search query as a single normalized vector.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChunkService manages stored chunks.
type ChunkService interface {
	// CreateChunks stores chunks in a batch, assigning IDs.
	CreateChunks(ctx context.Context, chunks []Chunk) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// DeleteAllChunks empties the store.
	DeleteAllChunks(ctx context.Context) error
}

// SearchOptions configures semantic search.
type SearchOptions struct {
	// Limit is the maximum number of results (top-k). Defaults to 5.
	Limit int

	// MinScore drops results scoring below the threshold (cosine, 0-1).
	MinScore float32
}

// SearchResult is one search match.
type SearchResult struct {
	Chunk Chunk
	Score float32
}

// SearchService provides semantic search over stored chunks, ordered by
// descending relevance.
type SearchService interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}
