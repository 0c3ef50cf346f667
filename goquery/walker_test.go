package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/goquery"
)

// The walk that collects a section's content is bounded by the heading's
// container. These tests pin that boundary down through Extract.
func TestExtractor_WalkBounds(t *testing.T) {
	t.Parallel()

	extractor := goquery.NewExtractor()

	t.Run("content of a sibling accordion item never leaks in", func(t *testing.T) {
		t.Parallel()

		doc, err := extractor.Extract(`<html><body><ul>
<li><h2>Eerste onderwerp</h2><div><p>hoort bij eerste</p></div></li>
<li><div><p>hoort bij tweede</p></div><h2>Tweede onderwerp</h2><p>ook tweede</p></li>
</ul></body></html>`, "")
		require.NoError(t, err)

		require.Len(t, doc.Sections, 2)
		require.Len(t, doc.Sections[0].Blocks, 1)
		assert.Equal(t, "hoort bij eerste", doc.Sections[0].Blocks[0].Text)
	})

	t.Run("the walk does not resume after escaping the container", func(t *testing.T) {
		t.Parallel()

		// The second <li> has no heading of its own; its content comes
		// after the first item's walk has already escaped and must not
		// attach to the first section.
		doc, err := extractor.Extract(`<html><body><ul>
<li><h2>Gebruik</h2><p>binnen</p></li>
<li><p>buiten</p></li>
</ul></body></html>`, "")
		require.NoError(t, err)

		require.Len(t, doc.Sections, 1)
		require.Len(t, doc.Sections[0].Blocks, 1)
		assert.Equal(t, "binnen", doc.Sections[0].Blocks[0].Text)
	})

	t.Run("blocks preserve document order across nesting depths", func(t *testing.T) {
		t.Parallel()

		doc, err := extractor.Extract(`<html><body><section><h2>Dosering</h2>
<p>eerste</p>
<div><div><ul><li>tweede</li></ul></div></div>
<p>derde</p>
</section></body></html>`, "")
		require.NoError(t, err)

		require.Len(t, doc.Sections, 1)
		blocks := doc.Sections[0].Blocks
		require.Len(t, blocks, 3)
		assert.Equal(t, "eerste", blocks[0].Text)
		assert.Equal(t, apotheek.BlockList, blocks[1].Type)
		assert.Equal(t, []string{"tweede"}, blocks[1].Items)
		assert.Equal(t, "derde", blocks[2].Text)
	})

	t.Run("inline markup text is joined with single spaces", func(t *testing.T) {
		t.Parallel()

		doc, err := extractor.Extract(`<html><body><section><h2>Waarschuwing</h2>
<p>Neem <strong>niet</strong> meer
	dan <em>4000 mg</em> per dag.</p>
</section></body></html>`, "")
		require.NoError(t, err)

		require.Len(t, doc.Sections, 1)
		require.Len(t, doc.Sections[0].Blocks, 1)
		assert.Equal(t, "Neem niet meer dan 4000 mg per dag.", doc.Sections[0].Blocks[0].Text)
	})
}
