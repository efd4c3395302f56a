package output

import (
	"io"

	"github.com/vegasq/copcat/record"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert a record set to the target
// format and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the record set in the formatter's specific format
	Format(set *record.Set) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}
