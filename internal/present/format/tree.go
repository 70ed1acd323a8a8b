package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mithrel/showcase/internal/document"
)

// WriteTree writes an indented outline of an element tree, one element per
// line, for inspecting how a document was interpreted.
func WriteTree(w io.Writer, el *document.Element) error {
	if el == nil {
		_, err := io.WriteString(w, "(empty)\n")
		return err
	}
	var b strings.Builder
	writeTree(&b, el, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTree(b *strings.Builder, el *document.Element, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s #%d", el.Kind, el.Key)
	switch el.Kind {
	case document.KindHeading:
		fmt.Fprintf(b, " level=%d", el.Level)
	case document.KindList:
		fmt.Fprintf(b, " ordered=%t", el.Ordered)
	case document.KindLink:
		fmt.Fprintf(b, " url=%s", strconv.Quote(el.URL))
	case document.KindDebugDump:
		fmt.Fprintf(b, " label=%s", strconv.Quote(el.Label))
	}
	if el.Text != "" {
		text := el.Text
		if r := []rune(text); len(r) > 60 {
			text = string(r[:57]) + "..."
		}
		b.WriteString(" ")
		b.WriteString(strconv.Quote(text))
	}
	b.WriteString("\n")
	for _, c := range el.Children {
		writeTree(b, c, depth+1)
	}
}
