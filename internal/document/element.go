package document

import (
	"fmt"
	"strings"
)

// Kind identifies the semantic role of a rendered element.
type Kind int

const (
	KindText Kind = iota
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindBold
	KindItalic
	KindLink
	KindGroup
	KindContainer
	KindTextBlock
	KindMarkup
	KindDebugDump
)

var kindNames = [...]string{
	KindText:      "text",
	KindParagraph: "paragraph",
	KindHeading:   "heading",
	KindList:      "list",
	KindListItem:  "list-item",
	KindBold:      "bold",
	KindItalic:    "italic",
	KindLink:      "link",
	KindGroup:     "group",
	KindContainer: "container",
	KindTextBlock: "text-block",
	KindMarkup:    "markup",
	KindDebugDump: "debug-dump",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText makes kinds readable in JSON exports of element trees.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown element kind %q", b)
}

// Link targets are always opened in a fresh browsing context without leaking
// the referring page.
const (
	LinkTarget = "_blank"
	LinkRel    = "noopener noreferrer"
)

// DebugLabel heads every fallback dump.
const DebugLabel = "Debug: Document Structure"

// Element is one node of the rendered tree. Only the fields relevant to Kind
// are populated; styling is left to whoever consumes the tree.
type Element struct {
	Kind     Kind       `json:"kind"`
	Key      int        `json:"key"`
	Text     string     `json:"text,omitempty"`
	Level    int        `json:"level,omitempty"`
	Ordered  bool       `json:"ordered,omitempty"`
	URL      string     `json:"url,omitempty"`
	Target   string     `json:"target,omitempty"`
	Rel      string     `json:"rel,omitempty"`
	Label    string     `json:"label,omitempty"`
	Children []*Element `json:"children,omitempty"`
}

// PlainText concatenates the text of e and all its descendants in order.
func (e *Element) PlainText() string {
	if e == nil {
		return ""
	}
	if len(e.Children) == 0 {
		return e.Text
	}
	var b strings.Builder
	for _, c := range e.Children {
		b.WriteString(c.PlainText())
	}
	return b.String()
}

// Walk visits e and its descendants depth-first, stopping early when fn
// returns false for a node (its children are skipped).
func (e *Element) Walk(fn func(*Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// compact drops nil contributions while keeping order.
func compact(in []*Element) []*Element {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Element, 0, len(in))
	for _, e := range in {
		if e != nil {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
