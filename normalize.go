package apotheek

import "strings"

// NormalizeSpace collapses runs of whitespace to a single space and trims
// the result. It is idempotent.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey normalizes text for comparison: whitespace collapsed,
// trimmed, lower-cased. Used wherever two pieces of extracted text are
// tested for equality (widget deny lists, paragraph/list dedupe).
func NormalizeKey(s string) string {
	return strings.ToLower(NormalizeSpace(s))
}
