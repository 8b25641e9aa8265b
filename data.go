package texttab

import (
	"iter"
	"slices"
)

// Data locates the lines to parse, drives the splitter over them, and
// applies fill-value substitution to the accumulated columns.
type Data interface {
	// Lines returns the comment-filtered, sliced subsequence of lines that
	// constitute table data.
	Lines(lines []string) ([]string, error)

	// Rows splits the data lines into field slices.
	Rows(dataLines []string, cols []*Column) iter.Seq2[[]string, error]

	// Fill applies fill-value substitution and masking to the columns.
	Fill(cols []*Column)
}

// BasicData locates data lines by comment filtering and optional start/end
// slicing.
type BasicData struct {
	// Start locates the first data line among the comment-filtered lines.
	// Nil starts at the beginning. Negative counts from the end.
	Start Locator

	// End locates one past the last data line. Nil runs to the end.
	// Negative counts from the end.
	End Locator

	// Comment matches comment lines, which are dropped along with blanks.
	Comment string

	// Splitter splits each data line into fields.
	Splitter Splitter

	// FillValues maps a bad literal to its replacement literal. Rows where
	// a substitution happened are recorded in the column mask.
	FillValues map[string]string

	// FillInclude restricts substitution to the named columns; nil applies
	// to all.
	FillInclude []string

	// FillExclude exempts the named columns, applied after FillInclude.
	FillExclude []string
}

// Lines filters blanks and comments and applies the start/end slice.
func (d *BasicData) Lines(lines []string) ([]string, error) {
	data := filterComments(lines, d.Comment)
	start, end := 0, len(data)
	if d.Start != nil {
		start = clampIndex(resolveIndex(d.Start, data), len(data))
	}
	if d.End != nil {
		end = clampIndex(resolveIndex(d.End, data), len(data))
	}
	if start > end {
		start = end
	}
	return data[start:end], nil
}

// Rows drives the splitter over the data lines.
func (d *BasicData) Rows(dataLines []string, cols []*Column) iter.Seq2[[]string, error] {
	return d.Splitter.Split(dataLines, cols)
}

// Fill replaces configured bad literals in each in-scope column and marks
// the substituted rows in the column mask.
func (d *BasicData) Fill(cols []*Column) {
	fillColumns(cols, d.FillValues, d.FillInclude, d.FillExclude)
}

// Option plumbing, mirroring the header variants.

func (d *BasicData) setStart(loc Locator)   { d.Start = loc }
func (d *BasicData) setEnd(loc Locator)     { d.End = loc }
func (d *BasicData) setComment(c string)    { d.Comment = c }
func (d *BasicData) splitterRef() *Splitter { return &d.Splitter }
func (d *BasicData) fillRef() *BasicData    { return d }

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// fillColumns applies fill rules. Column scoping is an exact name match:
// include keeps the named columns (nil keeps all), exclude is applied
// after. Out-of-scope columns keep a nil mask.
func fillColumns(cols []*Column, fills map[string]string, include, exclude []string) {
	if len(fills) == 0 {
		return
	}
	for _, col := range cols {
		if include != nil && !slices.Contains(include, col.Name) {
			continue
		}
		if slices.Contains(exclude, col.Name) {
			continue
		}
		col.Mask = make([]bool, len(col.Raw))
		for i, raw := range col.Raw {
			if fill, ok := fills[raw]; ok {
				col.Raw[i] = fill
				col.Mask[i] = true
			}
		}
	}
}
