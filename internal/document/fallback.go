package document

import (
	"encoding/json"
	"fmt"

	"github.com/k0kubun/pp"
)

func init() {
	// Dumps are embedded in HTML and logs, so no ANSI colors.
	pp.ColoringEnabled = false
}

// Fallback renders any value as a labeled structural dump meant for content
// authors debugging a document field. It always succeeds.
func Fallback(value any) *Element {
	return &Element{Kind: KindDebugDump, Label: DebugLabel, Text: Dump(value)}
}

// Dump pretty-prints value as two-space indented JSON, or with pp when the
// value has no JSON encoding (funcs, channels, NaN, cyclic maps).
func Dump(value any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%#v", value)
		}
	}()
	b, err := json.MarshalIndent(value, "", "  ")
	if err == nil {
		return string(b)
	}
	return pp.Sprint(value)
}
