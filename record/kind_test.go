package record

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
)

func TestColumnKind(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		want   Kind
	}{
		{"all null", []interface{}{nil, nil}, Null},
		{"bools", []interface{}{true, nil, false}, Bool},
		{"ints", []interface{}{json.Number("1"), json.Number("42")}, Int},
		{"ints and floats", []interface{}{json.Number("1"), json.Number("2.5")}, Float},
		{"strings", []interface{}{"a", nil, "b"}, String},
		{"string and number", []interface{}{"a", json.Number("1")}, String},
		{"bool and number", []interface{}{true, json.Number("1")}, String},
		{"object", []interface{}{"a", map[string]interface{}{"k": "v"}}, Nested},
		{"array after scalar", []interface{}{json.Number("1"), []interface{}{"x"}, "b"}, Nested},
		{"native numbers", []interface{}{int64(3), float64(1.5)}, Float},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]map[string]interface{}, 0, len(tt.values))
			for _, v := range tt.values {
				rows = append(rows, map[string]interface{}{"col": v})
			}
			set := New(rows)

			assert.Equal(t, tt.want, set.ColumnKind("col"))
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "Sea surface temperature", "Sea surface temperature"},
		{"number", json.Number("5000"), "5000"},
		{"float", json.Number("0.25"), "0.25"},
		{"bool", true, "true"},
		{"int64", int64(7), "7"},
		{"float64", 2.5, "2.5"},
		{"object", map[string]interface{}{"b": "2", "a": json.Number("1")}, `{"a":1,"b":"2"}`},
		{"array", []interface{}{"flood", "fire"}, `["flood","fire"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.v))
		})
	}
}

func TestJSONText_Nil(t *testing.T) {
	assert.Equal(t, "null", JSONText(nil))
}
