package document

// Node is a closed set of node variants. ParseNode is the only producer of
// Nodes from loose input; Interpret consumes them with an exhaustive switch.
type Node interface {
	node()
}

type TextNode struct {
	Text string
}

type ParagraphNode struct {
	Children []any
}

// HeadingNode.Level is always within 1..4.
type HeadingNode struct {
	Level    int
	Children []any
}

type ListNode struct {
	Ordered  bool
	Children []any
}

type ListItemNode struct {
	Children []any
}

// MarkNode carries an inline mark. When HasChildren is false the literal
// Text is the content.
type MarkNode struct {
	Children    []any
	HasChildren bool
	Text        string
}

type BoldNode MarkNode

type ItalicNode MarkNode

type LinkNode struct {
	URL      string
	Children []any
}

// GroupNode wraps children of a node whose type is not modeled.
type GroupNode struct {
	Children []any
}

// UnknownNode contributes nothing to the output.
type UnknownNode struct{}

func (TextNode) node()      {}
func (ParagraphNode) node() {}
func (HeadingNode) node()   {}
func (ListNode) node()      {}
func (ListItemNode) node()  {}
func (BoldNode) node()      {}
func (ItalicNode) node()    {}
func (LinkNode) node()      {}
func (GroupNode) node()     {}
func (UnknownNode) node()   {}

// Node type names as serialized by the content store's rich-text editor.
const (
	TypeText          = "text"
	TypeParagraph     = "paragraph"
	TypeHeading       = "heading"
	TypeUnorderedList = "unordered-list"
	TypeOrderedList   = "ordered-list"
	TypeListItem      = "list-item"
	TypeLink          = "link"
)

// ParseNode classifies one loose node value. Rules are tried in order and the
// first match wins; the order matters because shapes overlap (a node may carry
// both a type and marks, or both bold and italic).
func ParseNode(raw any) Node {
	raw = normalize(raw)
	if s, ok := raw.(string); ok {
		return TextNode{Text: s}
	}
	obj, ok := asObject(raw)
	if !ok {
		return UnknownNode{}
	}
	typ, _ := stringField(obj, "type")
	children, hasChildren := asSequence(obj["children"])

	switch typ {
	case TypeText:
		return TextNode{Text: textOf(obj)}
	case TypeParagraph:
		return ParagraphNode{Children: children}
	case TypeHeading:
		return HeadingNode{Level: headingLevel(obj), Children: children}
	case TypeUnorderedList, TypeOrderedList:
		return ListNode{Ordered: typ == TypeOrderedList, Children: children}
	case TypeListItem:
		return ListItemNode{Children: children}
	}
	if truthy(obj["bold"]) {
		return BoldNode{Children: children, HasChildren: hasChildren, Text: textOf(obj)}
	}
	if truthy(obj["italic"]) {
		return ItalicNode{Children: children, HasChildren: hasChildren, Text: textOf(obj)}
	}
	if typ == TypeLink {
		url, _ := stringField(obj, "url")
		return LinkNode{URL: url, Children: children}
	}
	if hasChildren {
		return GroupNode{Children: children}
	}
	if text := textOf(obj); text != "" {
		return TextNode{Text: text}
	}
	return UnknownNode{}
}
