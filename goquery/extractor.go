// Package goquery implements the structural content extractor for
// apotheek.nl medicine pages. The site renders each topic as an accordion
// item: an H2 heading inside a list item, with H3 sub-headings, paragraphs
// and lists as the item's content. The extractor collects exactly the
// content that belongs to each heading, bounded by the heading's accordion
// container, and filters out navigational and call-to-action widgets.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/semdegroot/apotheek"
)

// Heading levels used by the site's accordion convention.
const (
	topHeading   = "h2"
	subHeading   = "h3"
	titleHeading = "h1"
)

// Ensure Extractor implements apotheek.Extractor at compile time.
var _ apotheek.Extractor = (*Extractor)(nil)

// Extractor extracts structured content from raw HTML.
type Extractor struct {
	widgets   *apotheek.WidgetFilter
	dedupe    bool
	merge     bool
	mergeOpts apotheek.MergeOptions
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithWidgetFilter replaces the default apotheek.nl widget filter.
func WithWidgetFilter(f *apotheek.WidgetFilter) Option {
	return func(e *Extractor) { e.widgets = f }
}

// WithDedupe toggles the paragraph/list dedupe pass. Enabled by default.
func WithDedupe(enabled bool) Option {
	return func(e *Extractor) { e.dedupe = enabled }
}

// WithMerge toggles the short-paragraph merge pass. Disabled by default.
func WithMerge(enabled bool) Option {
	return func(e *Extractor) { e.merge = enabled }
}

// WithMergeOptions replaces the default merge thresholds.
func WithMergeOptions(opts apotheek.MergeOptions) Option {
	return func(e *Extractor) { e.mergeOpts = opts }
}

// NewExtractor creates an Extractor with the apotheek.nl defaults:
// default widget filter, dedupe on, merge off.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		widgets:   apotheek.DefaultWidgetFilter(),
		dedupe:    true,
		mergeOpts: apotheek.DefaultMergeOptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the HTML and builds the document record: the title from
// the first H1, and one section per qualifying H2 in document order.
// Malformed subtrees yield no blocks rather than errors; an input without
// headings produces an empty document.
func (e *Extractor) Extract(rawHTML string, source string) (*apotheek.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, apotheek.Errorf(apotheek.EINVALID, "failed to parse HTML: %v", err)
	}

	record := &apotheek.Document{URL: source}

	if h1 := doc.Find(titleHeading).First(); h1.Length() > 0 {
		record.Title = textContent(h1.Nodes[0])
	}

	doc.Find(topHeading).Each(func(_ int, sel *goquery.Selection) {
		sec, ok := e.sectionFromHeading(sel.Nodes[0])
		if !ok {
			return
		}
		if e.dedupe {
			apotheek.DedupeSection(&sec)
		}
		if e.merge {
			apotheek.MergeFragments(&sec, e.mergeOpts)
		}
		record.Sections = append(record.Sections, sec)
	})

	return record, nil
}

// buildState tracks where collected blocks attach while walking a
// section's scope.
type buildState int

const (
	// stateSection: before the first valid sub-heading, or after a widget
	// sub-heading reset; blocks attach to the section itself.
	stateSection buildState = iota

	// stateSubsection: blocks attach to the most recent subsection.
	stateSubsection
)

// builder accumulates one section while walking its container scope.
type builder struct {
	section apotheek.Section
	subs    []*apotheek.Subsection
	state   buildState
	current *apotheek.Subsection
}

func (b *builder) appendBlock(bl apotheek.Block) {
	if b.state == stateSubsection {
		b.current.Blocks = append(b.current.Blocks, bl)
		return
	}
	b.section.Blocks = append(b.section.Blocks, bl)
}

func (b *builder) enterSubsection(title string) {
	sub := &apotheek.Subsection{Title: title}
	b.subs = append(b.subs, sub)
	b.current = sub
	b.state = stateSubsection
}

func (b *builder) resetToSection() {
	b.current = nil
	b.state = stateSection
}

// finish drops empty subsections and reports whether the section has any
// content at all.
func (b *builder) finish() (apotheek.Section, bool) {
	for _, sub := range b.subs {
		if len(sub.Blocks) > 0 {
			b.section.Subsections = append(b.section.Subsections, *sub)
		}
	}
	if len(b.section.Blocks) == 0 && len(b.section.Subsections) == 0 {
		return apotheek.Section{}, false
	}
	return b.section, true
}

// sectionFromHeading collects the content that belongs to one top-level
// heading. The walk is bounded by the heading's resolved container and
// terminates early on the next top-level heading.
func (e *Extractor) sectionFromHeading(heading *html.Node) (apotheek.Section, bool) {
	title := textContent(heading)
	if e.widgets.IsWidgetTitle(title) {
		return apotheek.Section{}, false
	}

	b := &builder{section: apotheek.Section{Title: title}}
	w := newWalker(heading, nearestContainer(heading))

walk:
	for el := w.Next(); el != nil; el = w.Next() {
		switch el.Data {
		case topHeading:
			break walk
		case subHeading:
			subTitle := textContent(el)
			if e.widgets.IsWidgetTitle(subTitle) {
				b.resetToSection()
				continue
			}
			b.enterSubsection(subTitle)
		case "p":
			if txt := textContent(el); txt != "" {
				b.appendBlock(apotheek.Paragraph(txt))
			}
		case "ul", "ol":
			if items := listItems(el); len(items) > 0 {
				b.appendBlock(apotheek.List(el.Data == "ol", items...))
			}
		}
	}

	return b.finish()
}

// listItems extracts the usable texts of a list's direct child items.
// An item containing a nested heading is an accordion entry of its own,
// not list content, and is skipped whole.
func listItems(list *html.Node) []string {
	var items []string
	for li := list.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		if containsHeading(li) {
			continue
		}
		if txt := textContent(li); txt != "" {
			items = append(items, txt)
		}
	}
	return items
}

// containsHeading reports whether the subtree under n contains a heading
// element of level 1 through 4.
func containsHeading(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isHeading(c.Data) {
			return true
		}
		if containsHeading(c) {
			return true
		}
	}
	return false
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4":
		return true
	}
	return false
}
