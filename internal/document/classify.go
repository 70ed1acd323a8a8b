package document

import "strings"

// ShapeKind enumerates the top-level shapes a document value can take.
type ShapeKind int

const (
	ShapeEmpty ShapeKind = iota
	ShapePlainText
	ShapeMarkupText
	ShapeNodes
	ShapeUnrecognized
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeEmpty:
		return "empty"
	case ShapePlainText:
		return "plain-text"
	case ShapeMarkupText:
		return "markup-text"
	case ShapeNodes:
		return "nodes"
	case ShapeUnrecognized:
		return "unrecognized"
	}
	return "unknown"
}

// Shape is the result of classifying a document value. Text is set for the
// two text shapes, Nodes for ShapeNodes and Value for ShapeUnrecognized.
type Shape struct {
	Kind  ShapeKind
	Text  string
	Nodes []any
	Value any
}

// Classify decides which rendering path a document value takes. Exactly one
// shape is returned for every input.
//
// A non-nil "document" member is unwrapped one level and the inner value is
// classified afresh, so any depth of {"document": {"document": ...}} nesting
// resolves through repeated single-level unwraps.
func Classify(value any) Shape {
	value = normalize(value)
	if value == nil {
		return Shape{Kind: ShapeEmpty}
	}
	if obj, ok := value.(map[string]any); ok {
		if inner, ok := field(obj, "document"); ok {
			return Classify(inner)
		}
	}
	switch v := value.(type) {
	case string:
		if IsMarkup(v) {
			return Shape{Kind: ShapeMarkupText, Text: v}
		}
		return Shape{Kind: ShapePlainText, Text: v}
	case []any:
		return Shape{Kind: ShapeNodes, Nodes: v}
	case map[string]any:
		if children, ok := asSequence(v["children"]); ok {
			return Shape{Kind: ShapeNodes, Nodes: children}
		}
	}
	return Shape{Kind: ShapeUnrecognized, Value: value}
}

// IsMarkup reports whether s contains both '<' and '>'. It is a presence
// test, not a parser: "5 > 3 < 10" counts as markup.
func IsMarkup(s string) bool {
	return strings.ContainsRune(s, '<') && strings.ContainsRune(s, '>')
}
