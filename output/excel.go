package output

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/segmentio/encoding/json"
	"github.com/xuri/excelize/v2"

	"github.com/vegasq/copcat/record"
)

// ErrIllegalCharacter is returned when a cell contains a control character
// that cannot be stored in a spreadsheet.
var ErrIllegalCharacter = errors.New("illegal character in spreadsheet cell")

// ErrCellTooLong is returned when a cell exceeds the spreadsheet text limit.
var ErrCellTooLong = errors.New("spreadsheet cell too long")

// Control characters other than tab, line feed and carriage return are not
// allowed in SpreadsheetML text.
var illegalCharacters = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)

const sheetName = "Sheet1"

// ExcelFormatter writes a record set as an .xlsx workbook with one sheet.
type ExcelFormatter struct {
	writer io.Writer
}

// NewExcelFormatter creates a new spreadsheet formatter
func NewExcelFormatter(w io.Writer) *ExcelFormatter {
	return &ExcelFormatter{writer: w}
}

// SetOutput sets the output writer
func (x *ExcelFormatter) SetOutput(w io.Writer) {
	x.writer = w
}

// Format writes a header row followed by one row per record.
//
// Numbers and booleans keep their native cell types, nested values are
// written as JSON text. Cells with illegal control characters fail with
// ErrIllegalCharacter, cells over the text limit with ErrCellTooLong.
func (x *ExcelFormatter) Format(set *record.Set) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := make([]interface{}, len(set.Columns))
	for i, col := range set.Columns {
		if err := checkCell(col); err != nil {
			return fmt.Errorf("header %q: %w", col, err)
		}
		header[i] = col
	}
	if len(header) > 0 {
		if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	kinds := set.Kinds()
	cells := make([]interface{}, len(set.Columns))
	for n, row := range set.Rows {
		for i, col := range set.Columns {
			v, err := excelValue(kinds[col], row[col])
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", n+1, col, err)
			}
			cells[i] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("row %d: %w", n+1, err)
		}
	}

	if err := f.Write(x.writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func excelValue(kind record.Kind, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	switch kind {
	case record.Bool:
		return v, nil
	case record.Int:
		return toInt64(v)
	case record.Float:
		return toFloat64(v)
	case record.Nested:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		s := string(b)
		return s, checkCell(s)
	default:
		s := record.Text(v)
		return s, checkCell(s)
	}
}

func checkCell(s string) error {
	if loc := illegalCharacters.FindStringIndex(s); loc != nil {
		return fmt.Errorf("%w: %q at offset %d", ErrIllegalCharacter, s[loc[0]], loc[0])
	}
	if n := utf8.RuneCountInString(s); n > excelize.TotalCellChars {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrCellTooLong, n, excelize.TotalCellChars)
	}
	return nil
}
