package document

// Interpret renders a single parsed node. key is the node's position among its
// siblings and only serves as a stable identity for the element. A nil result
// means the node contributes nothing.
func Interpret(n Node, key int) *Element {
	switch n := n.(type) {
	case TextNode:
		return &Element{Kind: KindText, Key: key, Text: n.Text}
	case ParagraphNode:
		return &Element{Kind: KindParagraph, Key: key, Children: assemble(n.Children)}
	case HeadingNode:
		return &Element{Kind: KindHeading, Key: key, Level: n.Level, Children: assemble(n.Children)}
	case ListNode:
		return &Element{Kind: KindList, Key: key, Ordered: n.Ordered, Children: assemble(n.Children)}
	case ListItemNode:
		return &Element{Kind: KindListItem, Key: key, Children: assemble(n.Children)}
	case BoldNode:
		return &Element{Kind: KindBold, Key: key, Children: markContent(MarkNode(n))}
	case ItalicNode:
		return &Element{Kind: KindItalic, Key: key, Children: markContent(MarkNode(n))}
	case LinkNode:
		return &Element{
			Kind:     KindLink,
			Key:      key,
			URL:      n.URL,
			Target:   LinkTarget,
			Rel:      LinkRel,
			Children: assemble(n.Children),
		}
	case GroupNode:
		return &Element{Kind: KindGroup, Key: key, Children: assemble(n.Children)}
	case UnknownNode, nil:
		return nil
	}
	return nil
}

// RenderNode parses and interprets one loose node value.
func RenderNode(raw any, key int) *Element {
	return Interpret(ParseNode(raw), key)
}

// renderChildren maps RenderNode over children in order. Nil contributions
// are kept so positions line up with the input.
func renderChildren(children []any) []*Element {
	if len(children) == 0 {
		return nil
	}
	out := make([]*Element, len(children))
	for i, c := range children {
		out[i] = RenderNode(c, i)
	}
	return out
}

func assemble(children []any) []*Element {
	return compact(renderChildren(children))
}

func markContent(m MarkNode) []*Element {
	if m.HasChildren {
		return assemble(m.Children)
	}
	if m.Text == "" {
		return nil
	}
	return []*Element{{Kind: KindText, Text: m.Text}}
}
