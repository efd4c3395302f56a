package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Format names one of the on-disk artifact formats.
type Format string

const (
	Parquet Format = "parquet"
	Excel   Format = "excel"
	CSV     Format = "csv"
)

// Formats lists the on-disk formats in the order they are written.
func Formats() []Format {
	return []Format{Parquet, Excel, CSV}
}

// Ext returns the file extension used for the format.
func (f Format) Ext() string {
	if f == Excel {
		return "xlsx"
	}
	return string(f)
}

// newFormatter returns a fresh formatter for the format. The output writer is
// set by the caller.
func (f Format) newFormatter() Formatter {
	switch f {
	case Parquet:
		return NewParquetFormatter(nil)
	case Excel:
		return NewExcelFormatter(nil)
	default:
		return NewCSVFormatter(nil)
	}
}

// Layout is the output directory tree: one subdirectory per format under Root.
type Layout struct {
	Root string
}

// Dir returns the directory holding artifacts of the given format.
func (l Layout) Dir(f Format) string {
	return filepath.Join(l.Root, string(f))
}

// Path returns the artifact path for a source name.
func (l Layout) Path(f Format, name string) string {
	return filepath.Join(l.Dir(f), name+"."+f.Ext())
}

// Ensure creates the root and every format directory. Existing directories
// are left untouched, so calling it repeatedly is safe.
func (l Layout) Ensure() error {
	dirs := []string{l.Root}
	for _, f := range Formats() {
		dirs = append(dirs, l.Dir(f))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}
