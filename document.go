package apotheek

import (
	"context"
	"encoding/json"
)

// Document is the structured record extracted from one medicine page.
// It is built in a single pass and never mutated after the extractor
// returns it.
type Document struct {
	// URL is the source identifier the document was extracted from
	// (a URL or a local file path). Serialized as null when empty.
	URL string

	// Title is the text of the page's first H1 heading, or "" if none.
	Title string

	// Sections holds one entry per qualifying top-level heading,
	// in document order.
	Sections []Section
}

// Section is the content collected under one top-level (H2) heading.
type Section struct {
	Title       string       `json:"title"`
	Blocks      []Block      `json:"blocks"`
	Subsections []Subsection `json:"subsections,omitempty"`
}

// Subsection is the content collected under one sub-heading (H3) within a
// section's scope.
type Subsection struct {
	Title  string  `json:"title"`
	Blocks []Block `json:"blocks"`
}

// BlockType discriminates the Block union.
type BlockType string

// Block type constants.
const (
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
)

// Block is a unit of content within a (sub)section: either a paragraph or
// a list. The zero value is not a valid block; use Paragraph or List.
type Block struct {
	Type BlockType

	// Text is the paragraph text. Set only for BlockParagraph.
	Text string

	// Ordered and Items describe the list. Set only for BlockList.
	Ordered bool
	Items   []string
}

// Paragraph returns a paragraph block.
func Paragraph(text string) Block {
	return Block{Type: BlockParagraph, Text: text}
}

// List returns a list block.
func List(ordered bool, items ...string) Block {
	return Block{Type: BlockList, Ordered: ordered, Items: items}
}

type paragraphJSON struct {
	Type BlockType `json:"type"`
	Text string    `json:"text"`
}

type listJSON struct {
	Type    BlockType `json:"type"`
	Ordered bool      `json:"ordered"`
	Items   []string  `json:"items"`
}

// MarshalJSON encodes the block as {type:"paragraph",text} or
// {type:"list",ordered,items}.
func (b Block) MarshalJSON() ([]byte, error) {
	switch b.Type {
	case BlockParagraph:
		return json.Marshal(paragraphJSON{Type: b.Type, Text: b.Text})
	case BlockList:
		return json.Marshal(listJSON{Type: b.Type, Ordered: b.Ordered, Items: b.Items})
	default:
		return nil, Errorf(EINVALID, "unknown block type %q", b.Type)
	}
}

// UnmarshalJSON decodes either block shape based on the type field.
func (b *Block) UnmarshalJSON(data []byte) error {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Type {
	case BlockParagraph:
		var p paragraphJSON
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*b = Block{Type: BlockParagraph, Text: p.Text}
		return nil
	case BlockList:
		var l listJSON
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}
		*b = Block{Type: BlockList, Ordered: l.Ordered, Items: l.Items}
		return nil
	default:
		return Errorf(EINVALID, "unknown block type %q", probe.Type)
	}
}

type documentJSON struct {
	URL      *string   `json:"url"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// MarshalJSON encodes the document with a nullable url field, matching the
// clean JSON layout consumed by the index builder.
func (d Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{Title: d.Title, Sections: d.Sections}
	if out.Sections == nil {
		out.Sections = []Section{}
	}
	if d.URL != "" {
		out.URL = &d.URL
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the clean JSON layout; a null url becomes "".
func (d *Document) UnmarshalJSON(data []byte) error {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d.Title = in.Title
	d.Sections = in.Sections
	d.URL = ""
	if in.URL != nil {
		d.URL = *in.URL
	}
	return nil
}

// DocumentWriter persists extracted documents.
type DocumentWriter interface {
	// WriteDocument stores the document under the given base name.
	// The base name carries no extension; implementations decide the
	// final file naming.
	WriteDocument(ctx context.Context, doc *Document, base string) error
}
