package record

import (
	"github.com/segmentio/encoding/json"
)

// Kind is the storage type inferred for a column.
type Kind int

const (
	// Null columns have no non-null value in any row.
	Null Kind = iota
	Bool
	Int
	Float
	String
	// Nested columns contain at least one object or array.
	Nested
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Nested:
		return "nested"
	default:
		return "unknown"
	}
}

// ColumnKind infers the kind of the named column from its non-null values.
//
// Integers mixed with floats widen to Float. Any object or array makes the
// column Nested. Any other mix of scalar kinds falls back to String.
func (s *Set) ColumnKind(name string) Kind {
	kind := Null
	for _, row := range s.Rows {
		vk := ValueKind(row[name])
		switch {
		case vk == Null:
		case vk == Nested || kind == Nested:
			kind = Nested
		case kind == Null || kind == vk:
			kind = vk
		case (kind == Int && vk == Float) || (kind == Float && vk == Int):
			kind = Float
		default:
			kind = String
		}
	}
	return kind
}

// Kinds returns the kind of every column, keyed by column name.
func (s *Set) Kinds() map[string]Kind {
	kinds := make(map[string]Kind, len(s.Columns))
	for _, col := range s.Columns {
		kinds[col] = s.ColumnKind(col)
	}
	return kinds
}

// ValueKind classifies a single decoded value.
func ValueKind(v interface{}) Kind {
	switch val := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case string:
		return String
	case json.Number:
		if _, err := val.Int64(); err == nil {
			return Int
		}
		return Float
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int
	case float32, float64:
		return Float
	case map[string]interface{}, []interface{}:
		return Nested
	default:
		return String
	}
}
