package groq

import (
	"fmt"
	"strings"

	"github.com/semdegroot/apotheek"
)

// SystemPrompt instructs the model to answer from the supplied context
// only, without inline citations. The application renders the source list
// itself, under the answer.
const SystemPrompt = "Je bent een assistent die antwoorden geeft over geneesmiddelen op basis van meegeleverde context. " +
	"Gebruik uitsluitend die context; verzin niets. Antwoord beknopt, helder en feitelijk in de taal van de vraag; " +
	"als die onduidelijk is, antwoord in het Nederlands. " +
	"Noem doseringen/contra-indicaties alleen als die expliciet in de context staan. " +
	"BELANGRIJK: plaats GEEN inline verwijzingen ([1], [2], e.d.) en voeg GEEN bronnen- of referentieblok toe. " +
	"Schrijf uitsluitend het antwoord in lopende tekst."

// Place formats a chunk's location as "Title > Section[ > Subsection]".
func Place(c *apotheek.Chunk) string {
	place := strings.TrimSpace(c.Title) + " > " + strings.TrimSpace(c.Section)
	if c.Subsection != "" {
		place += " > " + strings.TrimSpace(c.Subsection)
	}
	return place
}

// sourceURL prefers the chunk's page URL, falling back to the file it was
// loaded from.
func sourceURL(c *apotheek.Chunk) string {
	if c.URL != "" {
		return c.URL
	}
	return c.SourceFile
}

// ContextBlocks renders retrieved passages as numbered context blocks.
func ContextBlocks(results []apotheek.SearchResult) []string {
	blocks := make([]string, len(results))
	for i := range results {
		c := &results[i].Chunk
		blocks[i] = fmt.Sprintf("[%d] %s\n%s\nURL: %s", i+1, Place(c), strings.TrimSpace(c.RawText), sourceURL(c))
	}
	return blocks
}

// UserPrompt builds the user message containing the question and context.
func UserPrompt(question string, blocks []string) string {
	var sb strings.Builder
	sb.WriteString("VRAAG:\n")
	sb.WriteString(question)
	sb.WriteString("\n\nCONTEXT (passages, eventueel genummerd door het systeem):\n")
	sb.WriteString(strings.Join(blocks, "\n\n"))
	sb.WriteString("\n\nINSTRUCTIES:\n")
	sb.WriteString("- Beantwoord uitsluitend op basis van de context.\n")
	sb.WriteString("- Schrijf alleen het antwoord; voeg GEEN citaties of 'Bronnen:'-regel toe.\n")
	sb.WriteString("- Als informatie ontbreekt, zeg dat expliciet.")
	return sb.String()
}

// maxFallbackSources caps the source list when the answer cites nothing.
const maxFallbackSources = 3

// Sources selects which retrieved passages to report under an answer.
// Passages the answer cites as [n] are used; if there are none, the top
// results are reported instead.
func Sources(results []apotheek.SearchResult, answer string) []apotheek.Source {
	var picked []int
	for i := range results {
		if strings.Contains(answer, fmt.Sprintf("[%d]", i+1)) {
			picked = append(picked, i)
		}
	}
	if len(picked) == 0 {
		n := len(results)
		if n > maxFallbackSources {
			n = maxFallbackSources
		}
		for i := 0; i < n; i++ {
			picked = append(picked, i)
		}
	}

	sources := make([]apotheek.Source, 0, len(picked))
	for _, i := range picked {
		c := &results[i].Chunk
		sources = append(sources, apotheek.Source{
			Place: Place(c),
			URL:   sourceURL(c),
			Score: results[i].Score,
		})
	}
	return sources
}
