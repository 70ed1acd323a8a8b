package db

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// encodeDocument stores a rich-text value as a protobuf-encoded
// google.protobuf.Value. A nil document is stored as NULL.
func encodeDocument(doc any) ([]byte, error) {
	if doc == nil {
		return nil, nil
	}
	v, err := structpb.NewValue(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return proto.Marshal(v)
}

func decodeDocument(b []byte) (any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var v structpb.Value
	if err := proto.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return v.AsInterface(), nil
}
