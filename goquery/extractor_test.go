package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/goquery"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and section, drops widget section", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<h1>Paracetamol</h1>
<ul>
	<li>
		<h2>Hoe gebruik ik dit middel?</h2>
		<p>Volwassenen: 500-1000 mg.</p>
		<ul><li>Max 4000 mg/dag</li></ul>
	</li>
	<li>
		<h2>Vind een apotheek</h2>
		<p>Zoek een apotheek bij u in de buurt.</p>
	</li>
</ul>
</body>
</html>`

		doc, err := goquery.NewExtractor().Extract(html, "https://www.apotheek.nl/medicijnen/paracetamol")

		require.NoError(t, err)
		assert.Equal(t, "Paracetamol", doc.Title)
		assert.Equal(t, "https://www.apotheek.nl/medicijnen/paracetamol", doc.URL)
		require.Len(t, doc.Sections, 1)

		sec := doc.Sections[0]
		assert.Equal(t, "Hoe gebruik ik dit middel?", sec.Title)
		require.Len(t, sec.Blocks, 2)
		assert.Equal(t, apotheek.Paragraph("Volwassenen: 500-1000 mg."), sec.Blocks[0])
		assert.Equal(t, apotheek.List(false, "Max 4000 mg/dag"), sec.Blocks[1])
	})

	t.Run("scopes content to the accordion list item", func(t *testing.T) {
		t.Parallel()

		// The paragraph in the second item must not leak into the first
		// section even though it follows the first heading in document
		// order.
		html := `<body><ul>
<li><h2>Wat doet dit middel?</h2><p>Pijnstiller.</p></li>
<li><h2>Wanneer gebruik ik het?</h2><p>Bij koorts.</p></li>
</ul></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 2)
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Pijnstiller.")}, doc.Sections[0].Blocks)
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Bij koorts.")}, doc.Sections[1].Blocks)
	})

	t.Run("next top-level heading ends the section in flat markup", func(t *testing.T) {
		t.Parallel()

		// No list items: both headings share the body container, so only
		// the h2 terminator separates them.
		html := `<body>
<h2>Wat doet dit middel?</h2>
<p>Eerste sectie.</p>
<h2>Wanneer gebruik ik het?</h2>
<p>Tweede sectie.</p>
</body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 2)
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Eerste sectie.")}, doc.Sections[0].Blocks)
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Tweede sectie.")}, doc.Sections[1].Blocks)
	})

	t.Run("reaches sibling lists at different nesting depths", func(t *testing.T) {
		t.Parallel()

		// Content wrapped in intermediate divs still belongs to the
		// section as long as it stays inside the container.
		html := `<body><ul><li>
<h2>Mogelijke bijwerkingen</h2>
<div><div><p>Soms komen deze klachten voor:</p></div>
<div><ul><li>Misselijkheid</li><li>Duizeligheid</li></ul></div></div>
</li></ul></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		require.Len(t, doc.Sections[0].Blocks, 2)
		assert.Equal(t, apotheek.List(false, "Misselijkheid", "Duizeligheid"), doc.Sections[0].Blocks[1])
	})

	t.Run("creates subsections on valid sub-headings", func(t *testing.T) {
		t.Parallel()

		html := `<body><ul><li>
<h2>Hoe gebruik ik dit middel?</h2>
<p>Algemeen advies.</p>
<h3>Volwassenen</h3>
<p>Maximaal 4 keer per dag.</p>
<h3>Kinderen</h3>
<ol><li>Overleg met de arts</li></ol>
</li></ul></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)

		sec := doc.Sections[0]
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Algemeen advies.")}, sec.Blocks)
		require.Len(t, sec.Subsections, 2)
		assert.Equal(t, "Volwassenen", sec.Subsections[0].Title)
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Maximaal 4 keer per dag.")}, sec.Subsections[0].Blocks)
		assert.Equal(t, "Kinderen", sec.Subsections[1].Title)
		assert.Equal(t, []apotheek.Block{apotheek.List(true, "Overleg met de arts")}, sec.Subsections[1].Blocks)
	})

	t.Run("widget sub-heading resets collection to the section", func(t *testing.T) {
		t.Parallel()

		html := `<body><ul><li>
<h2>Hoe gebruik ik dit middel?</h2>
<h3>Volwassenen</h3>
<p>In de subsectie.</p>
<h3>Aanmelden nieuwsbrief</h3>
<p>Na de widget.</p>
</li></ul></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)

		sec := doc.Sections[0]
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Na de widget.")}, sec.Blocks)
		require.Len(t, sec.Subsections, 1)
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("In de subsectie.")}, sec.Subsections[0].Blocks)
	})

	t.Run("drops empty subsections but keeps the section", func(t *testing.T) {
		t.Parallel()

		html := `<body><ul><li>
<h2>Hoe gebruik ik dit middel?</h2>
<p>Inhoud.</p>
<h3>Lege subsectie</h3>
</li></ul></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Empty(t, doc.Sections[0].Subsections)
	})

	t.Run("excludes list items containing nested headings", func(t *testing.T) {
		t.Parallel()

		html := `<body><section>
<h2>Mogelijke bijwerkingen</h2>
<ul>
	<li>Misselijkheid</li>
	<li><h3>Ernstige bijwerkingen</h3>Direct de arts bellen</li>
	<li>Hoofdpijn</li>
</ul>
</section></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		require.Len(t, doc.Sections[0].Blocks, 1)
		assert.Equal(t, apotheek.List(false, "Misselijkheid", "Hoofdpijn"), doc.Sections[0].Blocks[0])
	})

	t.Run("falls back to sectioning ancestors without a list item", func(t *testing.T) {
		t.Parallel()

		html := `<body><article><section>
<h2>Wat doet dit middel?</h2>
<p>Binnen de section.</p>
</section>
<p>Buiten de section.</p>
</article></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Equal(t, []apotheek.Block{apotheek.Paragraph("Binnen de section.")}, doc.Sections[0].Blocks)
	})

	t.Run("normalizes whitespace in extracted text", func(t *testing.T) {
		t.Parallel()

		html := "<body><ul><li><h2>Wat doet   dit\n middel?</h2><p>Regel\n\teen   twee.</p></li></ul></body>"

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Equal(t, "Wat doet dit middel?", doc.Sections[0].Title)
		assert.Equal(t, apotheek.Paragraph("Regel een twee."), doc.Sections[0].Blocks[0])
	})

	t.Run("drops sections without content", func(t *testing.T) {
		t.Parallel()

		html := `<body><ul><li><h2>Wat doet dit middel?</h2><p>   </p></li></ul></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		assert.Empty(t, doc.Sections)
	})

	t.Run("dedupes paragraphs restating list items by default", func(t *testing.T) {
		t.Parallel()

		html := `<body><ul><li>
<h2>Hoe gebruik ik dit middel?</h2>
<p>Neem niet meer dan 4000 mg per dag</p>
<ul><li>Neem niet meer dan  4000 MG per dag</li></ul>
</li></ul></body>`

		doc, err := goquery.NewExtractor().Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		require.Len(t, doc.Sections[0].Blocks, 1)
		assert.Equal(t, apotheek.BlockList, doc.Sections[0].Blocks[0].Type)
	})

	t.Run("merges short paragraph fragments when enabled", func(t *testing.T) {
		t.Parallel()

		html := `<body><ul><li>
<h2>Mag ik dit middel gebruiken?</h2>
<p>Ja.</p>
<p>U mag dit middel gebruiken.</p>
</li></ul></body>`

		doc, err := goquery.NewExtractor(goquery.WithMerge(true)).Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		require.Len(t, doc.Sections[0].Blocks, 1)
		assert.Equal(t, apotheek.Paragraph("Ja. U mag dit middel gebruiken."), doc.Sections[0].Blocks[0])
	})

	t.Run("returns empty document for input without headings", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewExtractor().Extract("<body><p>Alleen tekst.</p></body>", "")

		require.NoError(t, err)
		assert.Empty(t, doc.Title)
		assert.Empty(t, doc.Sections)
	})

	t.Run("accepts a custom widget filter", func(t *testing.T) {
		t.Parallel()

		filter := apotheek.NewWidgetFilter(apotheek.WidgetFilterConfig{
			SkipTitles:      []string{"Sponsored"},
			ShortTitleLimit: 2,
		})
		html := `<body><ul>
<li><h2>Sponsored</h2><p>Advertentie.</p></li>
<li><h2>Vind een apotheek</h2><p>Met de andere filter een widget.</p></li>
</ul></body>`

		doc, err := goquery.NewExtractor(goquery.WithWidgetFilter(filter)).Extract(html, "")

		require.NoError(t, err)
		require.Len(t, doc.Sections, 1)
		assert.Equal(t, "Vind een apotheek", doc.Sections[0].Title)
	})
}
