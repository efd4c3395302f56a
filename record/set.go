package record

import (
	"fmt"
	"sort"
)

// Set is a table of rows with a stable column order.
type Set struct {
	// Columns is the sorted union of field names across all rows.
	Columns []string
	// Rows holds one map per record. Absent fields are treated as nil.
	Rows []map[string]interface{}
}

// New builds a Set from rows, computing the column list.
func New(rows []map[string]interface{}) *Set {
	if rows == nil {
		rows = make([]map[string]interface{}, 0)
	}
	return &Set{
		Columns: columnNames(rows),
		Rows:    rows,
	}
}

// FromList converts a decoded JSON array into a Set. Every element must be a
// JSON object.
func FromList(items []interface{}) (*Set, error) {
	rows := make([]map[string]interface{}, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("element %d is %s, not an object", i, describe(item))
		}
		rows = append(rows, obj)
	}
	return New(rows), nil
}

// FromMapping transposes a decoded JSON object whose values are objects into
// a Set with one row per key. Rows are ordered by key: the decoded map keeps
// no upstream order, and sorting keeps reruns byte-identical.
func FromMapping(m map[string]interface{}) (*Set, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]map[string]interface{}, 0, len(keys))
	for _, k := range keys {
		obj, ok := m[k].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("value for key %q is %s, not an object", k, describe(m[k]))
		}
		rows = append(rows, obj)
	}
	return New(rows), nil
}

// Len returns the number of rows.
func (s *Set) Len() int {
	return len(s.Rows)
}

// HasColumn reports whether any row carries the named field.
func (s *Set) HasColumn(name string) bool {
	i := sort.SearchStrings(s.Columns, name)
	return i < len(s.Columns) && s.Columns[i] == name
}

// Stringify replaces every value of the named column with its textual form
// so that nested structures can be stored in scalar cells. It returns false
// when the column does not exist.
func (s *Set) Stringify(name string) bool {
	if !s.HasColumn(name) {
		return false
	}
	for _, row := range s.Rows {
		row[name] = JSONText(row[name])
	}
	return true
}

// columnNames returns all field names from all rows, sorted.
func columnNames(rows []map[string]interface{}) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			seen[col] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for col := range seen {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	return columns
}

func describe(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "an array"
	case map[string]interface{}:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
