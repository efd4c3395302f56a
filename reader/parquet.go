package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/segmentio/encoding/json"

	"github.com/vegasq/copcat/record"
)

// Reader reads a parquet file into a record set.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path and validates it as a parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads every row into memory.
//
// Each row carries every top-level column of the file; null cells are nil.
func (r *Reader) ReadAll() (*record.Set, error) {
	schema := r.pqFile.Schema()
	leaves := schema.Columns()

	names := make([]string, len(leaves))
	isJSON := make([]bool, len(leaves))
	for i, path := range leaves {
		names[i] = path[0]
		if leaf, ok := schema.Lookup(path...); ok {
			lt := leaf.Node.Type().LogicalType()
			isJSON[i] = lt != nil && lt.Json != nil
		}
	}

	rows := make([]map[string]interface{}, 0, r.pqFile.NumRows())

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	buf := make([]parquet.Row, 128)
	for {
		n, err := pr.ReadRows(buf)
		for _, row := range buf[:n] {
			rec := make(map[string]interface{}, len(names))
			for _, name := range names {
				rec[name] = nil
			}
			for _, v := range row {
				col := v.Column()
				if col < 0 || col >= len(names) {
					continue
				}
				value, convErr := goValue(v, isJSON[col])
				if convErr != nil {
					return nil, fmt.Errorf("failed to decode column %q: %w", names[col], convErr)
				}
				rec[names[col]] = value
			}
			rows = append(rows, rec)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if n == 0 {
			break
		}
	}

	set := record.New(rows)
	if len(rows) == 0 {
		// Leaf order follows the file; Set columns must stay sorted.
		columns := append([]string(nil), names...)
		sort.Strings(columns)
		set.Columns = columns
	}
	return set, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// NumRows returns the row count recorded in the file footer.
func (r *Reader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// Close closes the parquet reader and releases associated resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadFile opens path, reads every row and closes the file.
func ReadFile(path string) (*record.Set, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}

	set, readErr := r.ReadAll()
	closeErr := r.Close()
	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return set, nil
}

func goValue(v parquet.Value, isJSON bool) (interface{}, error) {
	if v.IsNull() {
		return nil, nil
	}

	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean(), nil
	case parquet.Int32:
		return int64(v.Int32()), nil
	case parquet.Int64:
		return v.Int64(), nil
	case parquet.Float:
		return float64(v.Float()), nil
	case parquet.Double:
		return v.Double(), nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		if !isJSON {
			return string(v.ByteArray()), nil
		}
		var nested interface{}
		dec := json.NewDecoder(bytes.NewReader(v.ByteArray()))
		dec.UseNumber()
		if err := dec.Decode(&nested); err != nil {
			return nil, err
		}
		return nested, nil
	default:
		return v.String(), nil
	}
}
