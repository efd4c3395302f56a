package record

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ColumnsAreSortedUnion(t *testing.T) {
	set := New([]map[string]interface{}{
		{"title": "a", "id": "1"},
		{"id": "2", "abstract": "x"},
	})

	assert.Equal(t, []string{"abstract", "id", "title"}, set.Columns)
	assert.Equal(t, 2, set.Len())
}

func TestNew_NilRows(t *testing.T) {
	set := New(nil)

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Columns)
	assert.NotNil(t, set.Rows)
}

func TestFromList(t *testing.T) {
	tests := []struct {
		name     string
		items    []interface{}
		wantRows int
		wantErr  bool
	}{
		{
			name:     "empty list",
			items:    []interface{}{},
			wantRows: 0,
		},
		{
			name: "objects",
			items: []interface{}{
				map[string]interface{}{"id": "a"},
				map[string]interface{}{"id": "b"},
			},
			wantRows: 2,
		},
		{
			name:    "scalar element",
			items:   []interface{}{map[string]interface{}{"id": "a"}, "oops"},
			wantErr: true,
		},
		{
			name:    "null element",
			items:   []interface{}{nil},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := FromList(tt.items)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRows, set.Len())
		})
	}
}

func TestFromMapping_OneRowPerKey(t *testing.T) {
	datasets := map[string]interface{}{
		"GLOBAL_ANALYSIS": map[string]interface{}{"id": "GLOBAL_ANALYSIS", "title": "Global"},
		"ARCTIC_MULTIYEAR": map[string]interface{}{"id": "ARCTIC_MULTIYEAR", "title": "Arctic", "doi": "10.48670/x"},
		"BALTIC_REANALYSIS": map[string]interface{}{"id": "BALTIC_REANALYSIS"},
	}

	set, err := FromMapping(datasets)
	require.NoError(t, err)

	require.Equal(t, 3, set.Len())
	assert.Equal(t, []string{"doi", "id", "title"}, set.Columns)

	// Rows follow key order.
	assert.Equal(t, "ARCTIC_MULTIYEAR", set.Rows[0]["id"])
	assert.Equal(t, "BALTIC_REANALYSIS", set.Rows[1]["id"])
	assert.Equal(t, "GLOBAL_ANALYSIS", set.Rows[2]["id"])
	assert.Nil(t, set.Rows[1]["title"])
}

func TestFromMapping_RejectsNonObjectValue(t *testing.T) {
	_, err := FromMapping(map[string]interface{}{
		"ok":  map[string]interface{}{"id": "ok"},
		"bad": []interface{}{1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestHasColumn(t *testing.T) {
	set := New([]map[string]interface{}{{"id": "1", "summaries": nil}})

	assert.True(t, set.HasColumn("id"))
	assert.True(t, set.HasColumn("summaries"))
	assert.False(t, set.HasColumn("title"))
}

func TestStringify(t *testing.T) {
	summaries := map[string]interface{}{
		"variables": []interface{}{"t2m", "tp"},
		"count":     json.Number("2"),
	}
	set := New([]map[string]interface{}{
		{"id": "era5", "summaries": summaries},
		{"id": "cams", "summaries": "already text"},
		{"id": "glofas", "summaries": nil},
		{"id": "efas"},
	})

	require.True(t, set.Stringify("summaries"))

	assert.Equal(t, `{"count":2,"variables":["t2m","tp"]}`, set.Rows[0]["summaries"])
	assert.Equal(t, "already text", set.Rows[1]["summaries"])
	assert.Equal(t, "null", set.Rows[2]["summaries"])
	assert.Equal(t, "null", set.Rows[3]["summaries"])

	for _, row := range set.Rows {
		assert.IsType(t, "", row["summaries"])
	}
	assert.Equal(t, String, set.ColumnKind("summaries"))
}

func TestStringify_MissingColumn(t *testing.T) {
	set := New([]map[string]interface{}{{"id": "1"}})

	assert.False(t, set.Stringify("summaries"))
	assert.Equal(t, []string{"id"}, set.Columns)
	_, present := set.Rows[0]["summaries"]
	assert.False(t, present)
}
