// Package document turns rich-text document values, as served by the content
// store, into a tree of typed elements.
//
// Input is loosely typed: a plain or markup string, a bare node sequence, an
// object holding a "children" sequence (optionally under "document"), or
// anything else. Rendering never fails; shapes it cannot interpret come back
// as a debug dump.
package document

import "log"

// Renderer renders document values. The zero value is ready to use; set Log to
// report documents that had to fall back to a debug dump.
type Renderer struct {
	Log *log.Logger
}

// Render converts a document value into an element tree. It returns nil for
// an absent document.
func (r *Renderer) Render(value any) *Element {
	shape := Classify(value)
	switch shape.Kind {
	case ShapeEmpty:
		return nil
	case ShapePlainText:
		return &Element{Kind: KindTextBlock, Text: shape.Text}
	case ShapeMarkupText:
		return &Element{Kind: KindMarkup, Text: shape.Text}
	case ShapeNodes:
		return &Element{Kind: KindContainer, Children: assemble(shape.Nodes)}
	}
	if r != nil && r.Log != nil {
		r.Log.Printf("document: unrecognized shape %T, rendering debug dump", shape.Value)
	}
	return Fallback(shape.Value)
}

var defaultRenderer Renderer

// Render converts a document value with a renderer that does not log.
func Render(value any) *Element {
	return defaultRenderer.Render(value)
}
