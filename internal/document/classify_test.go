package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestClassify(t *testing.T) {
	para := map[string]any{"type": "paragraph"}
	tests := []struct {
		name  string
		in    any
		kind  ShapeKind
		text  string
		nodes int
	}{
		{name: "nil", in: nil, kind: ShapeEmpty},
		{name: "plain string", in: "hello world", kind: ShapePlainText, text: "hello world"},
		{name: "empty string", in: "", kind: ShapePlainText},
		{name: "markup string", in: "<p>hi</p>", kind: ShapeMarkupText, text: "<p>hi</p>"},
		{name: "only open angle", in: "a < b", kind: ShapePlainText, text: "a < b"},
		{name: "only close angle", in: "a > b", kind: ShapePlainText, text: "a > b"},
		{name: "comparison looks like markup", in: "5 > 3 < 10", kind: ShapeMarkupText, text: "5 > 3 < 10"},
		{name: "bare sequence", in: []any{para, para}, kind: ShapeNodes, nodes: 2},
		{name: "empty sequence", in: []any{}, kind: ShapeNodes},
		{name: "wrapped sequence", in: map[string]any{"children": []any{para}}, kind: ShapeNodes, nodes: 1},
		{name: "document wrapper", in: map[string]any{"document": []any{para}}, kind: ShapeNodes, nodes: 1},
		{name: "document wrapping children", in: map[string]any{"document": map[string]any{"children": []any{para}}}, kind: ShapeNodes, nodes: 1},
		{name: "document wrapping string", in: map[string]any{"document": "plain"}, kind: ShapePlainText, text: "plain"},
		{name: "stacked wrappers", in: map[string]any{"document": map[string]any{"document": map[string]any{"children": []any{para}}}}, kind: ShapeNodes, nodes: 1},
		{name: "null document member", in: map[string]any{"document": nil}, kind: ShapeUnrecognized},
		{name: "children not a sequence", in: map[string]any{"children": "nope"}, kind: ShapeUnrecognized},
		{name: "unrelated object", in: map[string]any{"foo": 1.0}, kind: ShapeUnrecognized},
		{name: "number", in: 42.0, kind: ShapeUnrecognized},
		{name: "boolean", in: true, kind: ShapeUnrecognized},
		{name: "struct value", in: struct{ A int }{1}, kind: ShapeUnrecognized},
		{name: "typed map slice", in: []map[string]any{para}, kind: ShapeNodes, nodes: 1},
		{name: "raw json", in: json.RawMessage(`{"document":[{"type":"paragraph"}]}`), kind: ShapeNodes, nodes: 1},
		{name: "raw json string", in: json.RawMessage(`"<b>x</b>"`), kind: ShapeMarkupText, text: "<b>x</b>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.in)
			assert.Equal(t, tc.kind, got.Kind)
			assert.Equal(t, tc.text, got.Text)
			assert.Len(t, got.Nodes, tc.nodes)
			if tc.kind == ShapeUnrecognized {
				assert.NotNil(t, got.Value)
			}
		})
	}
}

func TestClassifyStructpb(t *testing.T) {
	v, err := structpb.NewValue(map[string]any{
		"document": []any{
			map[string]any{"type": "paragraph", "children": []any{map[string]any{"type": "text", "text": "hi"}}},
		},
	})
	require.NoError(t, err)

	got := Classify(v)
	require.Equal(t, ShapeNodes, got.Kind)
	require.Len(t, got.Nodes, 1)

	var nilValue *structpb.Value
	assert.Equal(t, ShapeEmpty, Classify(nilValue).Kind)
}

func TestIsMarkup(t *testing.T) {
	assert.True(t, IsMarkup("<em>x</em>"))
	assert.True(t, IsMarkup("><"))
	assert.False(t, IsMarkup("no tags here"))
	assert.False(t, IsMarkup("<"))
}
