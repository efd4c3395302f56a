package output

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/vegasq/copcat/record"
)

// Report describes what one Export call wrote.
type Report struct {
	Name string
	// Files lists the artifacts written, in write order.
	Files []string
	// ExcelErr is set when the spreadsheet could not be written. The other
	// formats are unaffected.
	ExcelErr error
	// Empty is set when the record set has no columns. No parquet file is
	// written for it; the spreadsheet and csv are.
	Empty bool
}

// Exporter writes a record set to every format of a Layout.
type Exporter struct {
	layout Layout
	logger *slog.Logger
}

// NewExporter creates an exporter writing under layout.
func NewExporter(layout Layout, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{layout: layout, logger: logger}
}

// Layout returns the directory tree the exporter writes to.
func (e *Exporter) Layout() Layout {
	return e.layout
}

// Export writes set as parquet, then excel, then csv, named after name.
//
// A parquet or csv failure is returned and stops the export. An excel
// failure is logged, recorded in the report and any stale workbook of the
// same name is removed; the csv is still written. A set without columns
// skips parquet and still gets an empty spreadsheet and csv.
func (e *Exporter) Export(set *record.Set, name string) (Report, error) {
	report := Report{Name: name}

	for _, f := range Formats() {
		path := e.layout.Path(f, name)
		if f == Parquet && len(set.Columns) == 0 {
			report.Empty = true
			e.logger.Warn("empty record set, no parquet written", "source", name)
			e.removeStale(path)
			continue
		}

		err := writeFile(path, f.newFormatter(), set)
		if err == nil {
			report.Files = append(report.Files, path)
			continue
		}

		if f != Excel {
			return report, fmt.Errorf("failed to save %s as %s: %w", name, f, err)
		}

		report.ExcelErr = err
		e.logger.Warn("could not save spreadsheet", "source", name, "err", err)
		e.removeStale(path)
	}

	e.logger.Info("saved outputs", "source", name, "rows", set.Len(), "files", len(report.Files))
	return report, nil
}

// removeStale deletes an artifact left by an earlier run.
func (e *Exporter) removeStale(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		e.logger.Warn("could not remove stale output", "path", path, "err", err)
	}
}

// writeFile encodes set completely before touching path.
func writeFile(path string, formatter Formatter, set *record.Set) error {
	var buf bytes.Buffer
	formatter.SetOutput(&buf)
	if err := formatter.Format(set); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
