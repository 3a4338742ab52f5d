// Package flatten walks JSON objects into ordered key/value leaf pairs.
// It operates on raw JSON bytes rather than decoded maps so that the
// document's key order is preserved; Go maps would randomize it.
package flatten

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// Field is a single flattened leaf: a dotted path and its textual value.
type Field struct {
	Key   string
	Value string
}

// Object flattens a JSON object depth-first in document order. Nested
// objects contribute dotted paths (parent.child). Arrays are not recursed
// into: an array leaf carries its compact JSON text as the value. Scalars
// are coerced to text (null becomes "null").
func Object(data []byte) ([]Field, error) {
	return flattenInto(nil, "", data)
}

func flattenInto(fields []Field, prefix string, data []byte) ([]Field, error) {
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		path := string(key)
		if prefix != "" {
			path = prefix + "." + path
		}

		switch dataType {
		case jsonparser.Object:
			nested, err := flattenInto(nil, path, value)
			if err != nil {
				return err
			}
			fields = append(fields, nested...)
		case jsonparser.Array:
			var buf bytes.Buffer
			if err := json.Compact(&buf, value); err != nil {
				return fmt.Errorf("compact array at %s: %w", path, err)
			}
			fields = append(fields, Field{Key: path, Value: buf.String()})
		case jsonparser.String:
			s, err := jsonparser.ParseString(value)
			if err != nil {
				return fmt.Errorf("parse string at %s: %w", path, err)
			}
			fields = append(fields, Field{Key: path, Value: s})
		case jsonparser.Null:
			fields = append(fields, Field{Key: path, Value: "null"})
		default:
			// numbers and booleans keep their literal text
			fields = append(fields, Field{Key: path, Value: string(value)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fields, nil
}
