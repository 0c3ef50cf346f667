package goquery

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/semdegroot/apotheek"
)

// nextInDocument returns the node following n in document order: first
// child if any, otherwise the next sibling of the closest ancestor
// (including n itself) that has one.
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// within reports whether ancestor is n or an ancestor of n.
func within(n, ancestor *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// walker yields the element nodes that follow a heading in document order
// while they remain inside the resolved container. Containment is
// re-checked on every candidate element rather than inferred from nesting
// depth, so sibling lists and containers at different depths stay reachable
// as long as they are still descendants of the container. The walk is
// lazy, finite and not restartable; once an element escapes the container
// the walker is exhausted.
type walker struct {
	cur       *html.Node
	container *html.Node
}

func newWalker(start, container *html.Node) *walker {
	return &walker{cur: start, container: container}
}

// Next returns the next in-scope element, or nil when the walk is done.
// Text, comment and doctype nodes are skipped; text is read later through
// textContent on the yielded elements.
func (w *walker) Next() *html.Node {
	for w.cur != nil {
		w.cur = nextInDocument(w.cur)
		if w.cur == nil {
			return nil
		}
		if w.cur.Type != html.ElementNode {
			continue
		}
		if !within(w.cur, w.container) {
			w.cur = nil
			return nil
		}
		return w.cur
	}
	return nil
}

// nearestContainer resolves the scope that belongs to a heading: the
// nearest list-item ancestor (the accordion item), else the first
// section/article/main/body ancestor in that priority order, else the
// heading's parent, else the heading itself.
func nearestContainer(heading *html.Node) *html.Node {
	for cur := heading; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode && cur.Data == "li" {
			return cur
		}
	}
	for _, tag := range []string{"section", "article", "main", "body"} {
		for cur := heading.Parent; cur != nil; cur = cur.Parent {
			if cur.Type == html.ElementNode && cur.Data == tag {
				return cur
			}
		}
	}
	if heading.Parent != nil {
		return heading.Parent
	}
	return heading
}

// textContent extracts the whitespace-normalized text of a subtree, with
// single spaces between adjacent text fragments.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return apotheek.NormalizeSpace(sb.String())
}
