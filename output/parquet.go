package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
	"github.com/segmentio/encoding/json"

	"github.com/vegasq/copcat/record"
)

// ErrNoColumns is returned when a record set without columns is written to a
// format that needs a schema.
var ErrNoColumns = errors.New("record set has no columns")

// ParquetFormatter writes a record set as a single parquet file.
//
// The schema is derived from the record set: every column is optional and
// typed by record.Kind. Nested columns are stored as JSON text with the JSON
// logical type so they survive a round trip.
type ParquetFormatter struct {
	writer io.Writer
	codec  compress.Codec
}

// NewParquetFormatter creates a parquet formatter using zstd compression.
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w, codec: &parquet.Zstd}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// SetCompression changes the page compression codec.
func (p *ParquetFormatter) SetCompression(codec compress.Codec) {
	p.codec = codec
}

// Format writes all rows and closes the parquet footer.
func (p *ParquetFormatter) Format(set *record.Set) error {
	if len(set.Columns) == 0 {
		return ErrNoColumns
	}

	kinds := set.Kinds()
	schema := Schema(set.Columns, kinds)
	writer := parquet.NewWriter(p.writer, schema, parquet.Compression(p.codec))

	// Leaf order is decided by the schema, not by set.Columns.
	leaves := schema.Columns()
	rows := make([]parquet.Row, 0, set.Len())
	for n, rec := range set.Rows {
		row := make(parquet.Row, len(leaves))
		for i, path := range leaves {
			name := path[0]
			value, err := parquetValue(kinds[name], rec[name])
			if err != nil {
				_ = writer.Close()
				return fmt.Errorf("row %d column %q: %w", n, name, err)
			}
			definition := 1
			if value.IsNull() {
				definition = 0
			}
			row[i] = value.Level(0, definition, i)
		}
		rows = append(rows, row)
	}

	if _, err := writer.WriteRows(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// Schema builds the parquet schema used for a record set.
func Schema(columns []string, kinds map[string]record.Kind) *parquet.Schema {
	group := make(parquet.Group, len(columns))
	for _, col := range columns {
		group[col] = parquet.Optional(columnNode(kinds[col]))
	}
	return parquet.NewSchema("record", group)
}

func columnNode(kind record.Kind) parquet.Node {
	switch kind {
	case record.Bool:
		return parquet.Leaf(parquet.BooleanType)
	case record.Int:
		return parquet.Int(64)
	case record.Float:
		return parquet.Leaf(parquet.DoubleType)
	case record.Nested:
		return parquet.JSON()
	default:
		return parquet.String()
	}
}

func parquetValue(kind record.Kind, v interface{}) (parquet.Value, error) {
	if v == nil {
		return parquet.NullValue(), nil
	}

	switch kind {
	case record.Bool:
		b, ok := v.(bool)
		if !ok {
			return parquet.Value{}, fmt.Errorf("expected boolean, got %T", v)
		}
		return parquet.BooleanValue(b), nil
	case record.Int:
		i, err := toInt64(v)
		if err != nil {
			return parquet.Value{}, err
		}
		return parquet.Int64Value(i), nil
	case record.Float:
		f, err := toFloat64(v)
		if err != nil {
			return parquet.Value{}, err
		}
		return parquet.DoubleValue(f), nil
	case record.Nested:
		b, err := json.Marshal(v)
		if err != nil {
			return parquet.Value{}, fmt.Errorf("failed to encode nested value: %w", err)
		}
		return parquet.ByteArrayValue(b), nil
	default:
		return parquet.ByteArrayValue([]byte(record.Text(v))), nil
	}
}

func toInt64(v interface{}) (int64, error) {
	switch val := v.(type) {
	case json.Number:
		return val.Int64()
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case uint:
		return int64(val), nil
	case uint64:
		return int64(val), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func toFloat64(v interface{}) (float64, error) {
	switch val := v.(type) {
	case json.Number:
		return val.Float64()
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	default:
		i, err := toInt64(v)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %T", v)
		}
		return float64(i), nil
	}
}
