package texttab

import "slices"

// Reader wires an inputter, header, data, and outputter into one read
// operation. A reader holds configuration only; all per-call state lives in
// the columns created inside Read, so a freshly built reader per call is
// all that concurrent use requires.
type Reader struct {
	Header    Header
	Data      Data
	Inputter  Inputter
	Outputter Outputter
}

// Read parses the input into a table. Parsing is all-or-nothing: the first
// structural, parse, or conversion problem fails the whole read.
func (r *Reader) Read(input any) (*Table, error) {
	lines, err := r.Inputter.Lines(input)
	if err != nil {
		return nil, err
	}
	dataLines, err := r.Data.Lines(lines)
	if err != nil {
		return nil, err
	}

	// The header may need the first data row to learn the field count.
	// Column positions are unknown at that point, so the peek runs the
	// splitter without them; positional splitters never peek.
	peek := func() ([]string, error) {
		for vals, err := range r.Data.Rows(dataLines, nil) {
			return vals, err
		}
		return nil, nil
	}

	cols, err := r.Header.Columns(lines, peek)
	if err != nil {
		return nil, err
	}

	refCount := -1
	var refVals []string
	row := 0
	for vals, err := range r.Data.Rows(dataLines, cols) {
		if err != nil {
			return nil, err
		}
		if refCount < 0 {
			refCount = len(vals)
			refVals = slices.Clone(vals)
		}
		if len(vals) != refCount {
			return nil, &InconsistentTableError{
				Row:            row,
				Expected:       refCount,
				Got:            len(vals),
				ExpectedValues: refVals,
				GotValues:      slices.Clone(vals),
			}
		}
		for _, col := range cols {
			col.Raw = append(col.Raw, vals[col.Index])
		}
		row++
	}

	r.Data.Fill(cols)
	return r.Outputter.Table(cols)
}
