// Package apotheek provides a scraping and question-answering pipeline for
// apotheek.nl medicine pages. It extracts the structured content of each
// page (sections, subsections, paragraphs, lists) from the site's
// H2/H3 accordion layout, persists it as clean JSON, indexes it for
// semantic search, and answers natural language questions in Dutch with
// source references.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, groq/).
package apotheek
