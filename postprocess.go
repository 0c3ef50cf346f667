package apotheek

import "strings"

// DedupeSection removes paragraph blocks that restate a list item within
// the same (sub)section scope: a paragraph is dropped when its normalized
// text exactly equals the normalized text of any item across the scope's
// list blocks. List blocks are never altered. Subsections are processed
// independently, so items in one subsection never affect another.
func DedupeSection(sec *Section) {
	sec.Blocks = dedupeBlocks(sec.Blocks)
	for i := range sec.Subsections {
		sec.Subsections[i].Blocks = dedupeBlocks(sec.Subsections[i].Blocks)
	}
}

func dedupeBlocks(blocks []Block) []Block {
	items := make(map[string]struct{})
	for _, b := range blocks {
		if b.Type != BlockList {
			continue
		}
		for _, it := range b.Items {
			items[NormalizeKey(it)] = struct{}{}
		}
	}
	if len(items) == 0 {
		return blocks
	}
	out := blocks[:0]
	for _, b := range blocks {
		if b.Type == BlockParagraph {
			if _, dup := items[NormalizeKey(b.Text)]; dup {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

// MergeOptions tunes the paragraph fragment merging pass. The thresholds
// are cosmetic tuning constants; the defaults match the site's observed
// fragment patterns.
type MergeOptions struct {
	// ShortWordLimit: a paragraph with at most this many words is always
	// joined with the paragraph that follows it.
	ShortWordLimit int

	// ContinuationWordLimit: when the first paragraph does not end in a
	// terminator, a following paragraph with at most this many words is
	// joined onto it.
	ContinuationWordLimit int

	// Terminators are the sentence-ending characters checked on the first
	// paragraph's last byte.
	Terminators string
}

// DefaultMergeOptions returns the standard fragment-merging thresholds.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		ShortWordLimit:        4,
		ContinuationWordLimit: 30,
		Terminators:           ".:?!",
	}
}

// MergeFragments joins consecutive short paragraph fragments within a
// section and each of its subsections. Merging is transitive within a run:
// a merged paragraph becomes the first operand for the next comparison.
// List blocks are never merge targets or sources.
func MergeFragments(sec *Section, opts MergeOptions) {
	sec.Blocks = mergeBlocks(sec.Blocks, opts)
	for i := range sec.Subsections {
		sec.Subsections[i].Blocks = mergeBlocks(sec.Subsections[i].Blocks, opts)
	}
}

func mergeBlocks(blocks []Block, opts MergeOptions) []Block {
	var out []Block
	for _, b := range blocks {
		if len(out) > 0 && b.Type == BlockParagraph && out[len(out)-1].Type == BlockParagraph {
			first := strings.TrimSpace(out[len(out)-1].Text)
			next := strings.TrimSpace(b.Text)
			if shouldMerge(first, next, opts) {
				out[len(out)-1].Text = strings.TrimSpace(first + " " + next)
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func shouldMerge(first, next string, opts MergeOptions) bool {
	if len(strings.Fields(first)) <= opts.ShortWordLimit {
		return true
	}
	if first != "" && strings.ContainsRune(opts.Terminators, rune(first[len(first)-1])) {
		return false
	}
	return len(strings.Fields(next)) <= opts.ContinuationWordLimit
}
