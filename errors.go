package texttab

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
var (
	// ErrInconsistentTable indicates a structural problem: the header column
	// count disagrees with the data, or a data row has a different field
	// count than the first row.
	ErrInconsistentTable = errors.New("inconsistent table")

	// ErrConversion indicates that no converter in a column's list succeeded
	// for every value in that column.
	ErrConversion = errors.New("column conversion failed")

	// ErrBadOption indicates an unrecognized or malformed option.
	ErrBadOption = errors.New("bad option")

	// ErrInputShape indicates that the input is neither a path, a text
	// block, a line slice, nor a reader.
	ErrInputShape = errors.New("unsupported input shape")

	// ErrBadLine indicates a line that could not be parsed at all: an
	// unterminated quote, a missing header line, or an unparsable
	// description line.
	ErrBadLine = errors.New("malformed line")

	// ErrUnknownFormat indicates an unrecognized format name.
	ErrUnknownFormat = errors.New("unknown format")
)

// InconsistentTableError carries the structural details of a count mismatch
// for diagnostics. It unwraps to [ErrInconsistentTable].
type InconsistentTableError struct {
	// Row is the zero-based data row whose field count diverged, or -1 when
	// the header itself disagreed with the first data row.
	Row int

	// Expected and Got are the reference and observed field counts.
	Expected int
	Got      int

	// ExpectedValues and GotValues are the reference values (header names
	// or first-row fields) and the offending values.
	ExpectedValues []string
	GotValues      []string
}

func (e *InconsistentTableError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("inconsistent table: %d header columns vs %d data columns in first row (header %q, data %q)",
			e.Expected, e.Got, e.ExpectedValues, e.GotValues)
	}
	return fmt.Sprintf("inconsistent table: %d columns expected but data row %d has %d (reference %q, row %q)",
		e.Expected, e.Row, e.Got, e.ExpectedValues, e.GotValues)
}

func (e *InconsistentTableError) Unwrap() error { return ErrInconsistentTable }
