package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vegasq/copcat/record"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row followed by one line per record.
//
// Columns follow set.Columns. Missing and nil values are written as empty
// fields, nested values as compact JSON.
func (c *CSVFormatter) Format(set *record.Set) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(set.Columns) == 0 {
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			return fmt.Errorf("failed to flush CSV writer: %w", err)
		}
		return nil
	}

	if err := csvWriter.Write(set.Columns); err != nil {
		return err
	}

	line := make([]string, len(set.Columns))
	for _, row := range set.Rows {
		for i, col := range set.Columns {
			line[i] = formatValue(row[col])
		}
		if err := csvWriter.Write(line); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue converts a value to string for CSV output
func formatValue(v interface{}) string {
	return record.Text(v)
}
