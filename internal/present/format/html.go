package format

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/mithrel/showcase/internal/document"
)

// Tag builds an element node. attrs are key/value pairs.
func Tag(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text builds an escaped text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Append adds children to parent, skipping nils, and returns parent.
func Append(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
	return parent
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4}

// HTML converts an element tree to an HTML node tree. Markup elements are
// inserted verbatim; everything else is escaped. A nil tree yields nil.
func HTML(el *document.Element) *html.Node {
	if el == nil {
		return nil
	}
	var n *html.Node
	switch el.Kind {
	case document.KindContainer:
		n = Tag(atom.Div, "class", "document")
	case document.KindTextBlock:
		return Append(Tag(atom.Div, "class", "document-text"), Text(el.Text))
	case document.KindMarkup:
		return Append(Tag(atom.Div, "class", "document-html"), &html.Node{Type: html.RawNode, Data: el.Text})
	case document.KindDebugDump:
		return Append(Tag(atom.Div, "class", "document-debug"),
			Append(Tag(atom.Div, "class", "debug-label"), Text(el.Label)),
			Append(Tag(atom.Pre), Text(el.Text)),
		)
	case document.KindText:
		return Append(Tag(atom.Span), Text(el.Text))
	case document.KindParagraph:
		n = Tag(atom.P)
	case document.KindHeading:
		level := el.Level
		if level < 1 || level > len(headingAtoms) {
			level = len(headingAtoms)
		}
		n = Tag(headingAtoms[level-1])
	case document.KindList:
		if el.Ordered {
			n = Tag(atom.Ol)
		} else {
			n = Tag(atom.Ul)
		}
	case document.KindListItem:
		n = Tag(atom.Li)
	case document.KindBold:
		n = Tag(atom.Strong)
	case document.KindItalic:
		n = Tag(atom.Em)
	case document.KindLink:
		n = Tag(atom.A, "href", el.URL, "target", el.Target, "rel", el.Rel)
	default:
		n = Tag(atom.Span)
	}
	for _, c := range el.Children {
		Append(n, HTML(c))
	}
	return n
}

// WriteHTML writes the HTML rendering of an element tree. Nothing is written
// for a nil tree.
func WriteHTML(w io.Writer, el *document.Element) error {
	n := HTML(el)
	if n == nil {
		return nil
	}
	return html.Render(w, n)
}
