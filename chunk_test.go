package apotheek_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdegroot/apotheek"
)

func TestFlattenDocument(t *testing.T) {
	t.Parallel()

	t.Run("emits one chunk per paragraph and per list item", func(t *testing.T) {
		t.Parallel()

		doc := &apotheek.Document{
			URL:   "https://www.apotheek.nl/medicijnen/paracetamol",
			Title: "Paracetamol",
			Sections: []apotheek.Section{{
				Title: "Hoe gebruik ik dit middel?",
				Blocks: []apotheek.Block{
					apotheek.Paragraph("Volwassenen: 500-1000 mg."),
					apotheek.List(false, "Max 4000 mg/dag", "Minstens 4 uur tussen doses"),
				},
			}},
		}

		chunks := apotheek.FlattenDocument(doc, "paracetamol_clean.json")

		require.Len(t, chunks, 3)
		assert.Equal(t, "Titel: Paracetamol | Sectie: Hoe gebruik ik dit middel? || Volwassenen: 500-1000 mg.", chunks[0].Text)
		assert.Equal(t, "Volwassenen: 500-1000 mg.", chunks[0].RawText)
		assert.Equal(t, apotheek.ChunkParagraph, chunks[0].BlockType)
		assert.Equal(t, apotheek.ChunkListItem, chunks[1].BlockType)
		assert.Equal(t, "Max 4000 mg/dag", chunks[1].RawText)
		assert.Equal(t, "paracetamol_clean.json", chunks[2].SourceFile)
		assert.Equal(t, "https://www.apotheek.nl/medicijnen/paracetamol", chunks[2].URL)
	})

	t.Run("includes the subsection in the context prefix", func(t *testing.T) {
		t.Parallel()

		doc := &apotheek.Document{
			Title: "Ibuprofen",
			Sections: []apotheek.Section{{
				Title: "Mag ik dit middel gebruiken?",
				Subsections: []apotheek.Subsection{{
					Title:  "Zwangerschap",
					Blocks: []apotheek.Block{apotheek.Paragraph("Liever niet gebruiken.")},
				}},
			}},
		}

		chunks := apotheek.FlattenDocument(doc, "")

		require.Len(t, chunks, 1)
		assert.Equal(t, "Titel: Ibuprofen | Sectie: Mag ik dit middel gebruiken? > Zwangerschap || Liever niet gebruiken.", chunks[0].Text)
		assert.Equal(t, "Zwangerschap", chunks[0].Subsection)
	})

	t.Run("skips empty texts", func(t *testing.T) {
		t.Parallel()

		doc := &apotheek.Document{
			Title: "Paracetamol",
			Sections: []apotheek.Section{{
				Title: "Wat doet dit middel?",
				Blocks: []apotheek.Block{
					apotheek.Paragraph("   "),
					apotheek.List(false, "", "echte inhoud"),
				},
			}},
		}

		chunks := apotheek.FlattenDocument(doc, "")

		require.Len(t, chunks, 1)
		assert.Equal(t, "echte inhoud", chunks[0].RawText)
	})

	t.Run("returns no chunks for an empty document", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, apotheek.FlattenDocument(&apotheek.Document{}, ""))
	})
}
