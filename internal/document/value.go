package document

import (
	"encoding/json"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"
)

// normalize maps the transport-specific forms a document can arrive in onto
// plain Go values: map[string]any, []any, string, float64, bool and nil.
// Anything it does not know is returned unchanged.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return string(x)
	case json.RawMessage:
		var out any
		if err := json.Unmarshal(x, &out); err != nil {
			return x
		}
		return out
	case *structpb.Value:
		return x.AsInterface()
	case *structpb.Struct:
		return x.AsMap()
	case *structpb.ListValue:
		return x.AsSlice()
	case []map[string]any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, s := range x {
			out[k] = s
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out
	}
	return v
}

func asObject(v any) (map[string]any, bool) {
	m, ok := normalize(v).(map[string]any)
	return m, ok && m != nil
}

func asSequence(v any) ([]any, bool) {
	s, ok := normalize(v).([]any)
	return s, ok
}

// field returns the named member of obj with nil treated as absent.
func field(obj map[string]any, name string) (any, bool) {
	v, ok := obj[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func stringField(obj map[string]any, name string) (string, bool) {
	v, ok := field(obj, name)
	if !ok {
		return "", false
	}
	s, ok := normalize(v).(string)
	return s, ok
}

// textOf reads the "text" member. Numbers are formatted the way a JSON
// decoder would have produced them; zero, being falsy, counts as absent, as
// do other types.
func textOf(obj map[string]any) string {
	v, ok := field(obj, "text")
	if !ok {
		return ""
	}
	switch x := normalize(v).(type) {
	case string:
		return x
	case float64:
		if x == 0 {
			return ""
		}
		return formatNumber(x)
	case int:
		if x == 0 {
			return ""
		}
		return strconv.Itoa(x)
	case int64:
		if x == 0 {
			return ""
		}
		return strconv.FormatInt(x, 10)
	}
	return ""
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// truthy follows JSON-document truthiness: false, 0, "" and nil are falsy,
// everything else, including empty objects and sequences, is truthy.
func truthy(v any) bool {
	switch x := normalize(v).(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case uint:
		return x != 0
	case uint64:
		return x != 0
	}
	return true
}

// headingLevel resolves a heading's level to 1..4. An absent or falsy level
// defaults to 2; values other than 1, 2 and 3 collapse to 4.
func headingLevel(obj map[string]any) int {
	v, ok := field(obj, "level")
	if !ok || !truthy(v) {
		return 2
	}
	var n float64
	switch x := normalize(v).(type) {
	case float64:
		n = x
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	default:
		return 4
	}
	switch n {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 3
	}
	return 4
}
