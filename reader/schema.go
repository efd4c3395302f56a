package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// SchemaInfo represents metadata about a single column in a parquet file.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Optional     bool   `json:"optional"`
}

// ExtractSchemaInfo describes the leaf columns of a parquet file.
//
// Nested groups are flattened with dot notation, although artifacts written
// by this module only contain top-level leaves.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	var infos []SchemaInfo
	for _, field := range r.Schema().Fields() {
		infos = append(infos, fieldInfo(field, "")...)
	}
	return infos, nil
}

func fieldInfo(field parquet.Field, prefix string) []SchemaInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	if children := field.Fields(); len(children) > 0 {
		var infos []SchemaInfo
		for _, child := range children {
			infos = append(infos, fieldInfo(child, name)...)
		}
		return infos
	}

	info := SchemaInfo{
		Name:         name,
		PhysicalType: physicalType(field),
		Optional:     field.Optional(),
	}
	if lt := field.Type().LogicalType(); lt != nil {
		info.LogicalType = lt.String()
	}
	info.Type = friendlyType(info.PhysicalType, info.LogicalType)
	return []SchemaInfo{info}
}

func physicalType(field parquet.Field) string {
	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// friendlyType maps physical and logical types to the names used by the
// record package.
func friendlyType(physical, logical string) string {
	switch logical {
	case "STRING", "UTF8":
		return "string"
	case "JSON":
		return "nested"
	}

	switch physical {
	case "BOOLEAN":
		return "bool"
	case "INT32", "INT64":
		return "int"
	case "FLOAT", "DOUBLE":
		return "float"
	case "BYTE_ARRAY", "FIXED_LEN_BYTE_ARRAY":
		return "string"
	default:
		return "unknown"
	}
}
