// Package record holds the in-memory table produced from one catalog response.
//
// A Set is an ordered slice of rows, each a map from field name to the value
// decoded from JSON, plus the sorted union of every row's field names. Rows do
// not need to share the same fields; a missing field reads as nil.
//
// # Building a Set
//
// List-shaped responses become one row per element:
//
//	set, err := record.FromList(items)
//
// Mapping-shaped responses (an object whose values are objects) become one row
// per key, ordered by key:
//
//	set, err := record.FromMapping(datasets)
//
// # Values
//
// Values are nil, string, bool, json.Number, map[string]interface{} or
// []interface{}. Kind reports how a column will be typed by the writers in
// package output, and Text renders a single value as a cell string.
package record
