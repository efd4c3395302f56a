package record

import (
	"fmt"
	"strconv"

	"github.com/segmentio/encoding/json"
)

// Text renders a value as a single cell string. Nil becomes the empty
// string and nested values become compact JSON.
func Text(v interface{}) string {
	if v == nil {
		return ""
	}
	return JSONText(v)
}

// JSONText renders a value as text. Strings are returned unchanged, every
// other value is encoded as compact JSON, so nil becomes "null".
func JSONText(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
