package format

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mithrel/showcase/internal/document"
	"github.com/mithrel/showcase/pkg/api"
)

// Document is one rendered document field of a project.
type Document struct {
	Field   api.DocumentField
	Element *document.Element
}

// Documents holds a project's rendered document fields in page order.
type Documents []Document

// DocumentFields lists the document fields in the order pages show them.
var DocumentFields = []api.DocumentField{api.FieldDevelopmentProcess, api.FieldDesignInspiration}

// RenderDocuments renders every document field of p. Absent documents are
// kept with a nil Element so callers can decide whether to show a section.
func RenderDocuments(r *document.Renderer, p api.Project) Documents {
	out := make(Documents, 0, len(DocumentFields))
	for _, f := range DocumentFields {
		raw, _ := p.Document(f)
		out = append(out, Document{Field: f, Element: r.Render(raw)})
	}
	return out
}

// MarkupText extracts the visible text of an HTML fragment.
func MarkupText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	return strings.TrimSpace(doc.Text())
}

// PlainText flattens a rendered tree to text. Block elements end a line;
// markup is reduced to its visible text.
func PlainText(el *document.Element) string {
	var b strings.Builder
	writePlain(&b, el)
	return strings.TrimRight(b.String(), "\n")
}

func writePlain(b *strings.Builder, el *document.Element) {
	if el == nil {
		return
	}
	switch el.Kind {
	case document.KindText:
		b.WriteString(el.Text)
	case document.KindTextBlock:
		b.WriteString(el.Text)
		b.WriteByte('\n')
	case document.KindMarkup:
		b.WriteString(MarkupText(el.Text))
		b.WriteByte('\n')
	case document.KindDebugDump:
		b.WriteString(el.Label)
		b.WriteByte('\n')
		b.WriteString(el.Text)
		b.WriteByte('\n')
	default:
		for _, c := range el.Children {
			writePlain(b, c)
		}
		if isBlock(el.Kind) && el.Kind != document.KindContainer && el.Kind != document.KindList {
			b.WriteByte('\n')
		}
	}
}

func isBlock(k document.Kind) bool {
	switch k {
	case document.KindParagraph, document.KindHeading, document.KindList, document.KindListItem,
		document.KindContainer, document.KindTextBlock, document.KindMarkup, document.KindDebugDump:
		return true
	}
	return false
}
