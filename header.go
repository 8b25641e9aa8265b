package texttab

import (
	"fmt"
	"regexp"
	"slices"
)

// Locator resolves a logical line index from a processed line sequence.
// A nil Locator means "no such line". Negative results count from the end.
type Locator func(lines []string) int

// At returns a Locator for a fixed index.
func At(i int) Locator {
	return func([]string) int { return i }
}

// RowPeek returns the first data row's fields so a header can validate its
// name count against the data. It is supplied by the reader per call.
type RowPeek func() ([]string, error)

// Header resolves the ordered, filtered column set for a table.
type Header interface {
	Columns(lines []string, peek RowPeek) ([]*Column, error)
}

// ColumnFilter is the column name selection shared by every header
// variant.
type ColumnFilter struct {
	// Names overrides reading names from the table.
	Names []string

	// Include keeps only the named columns; nil keeps all.
	Include []string

	// Exclude drops the named columns, applied after Include.
	Exclude []string
}

func (f *ColumnFilter) filter() *ColumnFilter { return f }

// columnFiltered is implemented by all header variants through their
// embedded [ColumnFilter]; option application reaches the filter without
// knowing the concrete header type.
type columnFiltered interface {
	filter() *ColumnFilter
}

// BasicHeader reads column names from a single header line located by
// Start, or synthesizes them when there is no header line.
type BasicHeader struct {
	ColumnFilter

	// Start locates the header line among the comment-filtered lines. Nil
	// means the table has no header line and names are synthesized as
	// col1..colN unless Names is set.
	Start Locator

	// Comment matches comment lines, which are excluded from header line
	// counting. Empty disables comment filtering.
	Comment string

	// Splitter splits the header line into names.
	Splitter Splitter

	// AutoFormat generates names when there is no header line. Empty means
	// "col%d".
	AutoFormat string
}

// Columns resolves the header names, validates them against the first data
// row, and returns the filtered column set.
func (h *BasicHeader) Columns(lines []string, peek RowPeek) ([]*Column, error) {
	firstRow, err := peek()
	if err != nil {
		return nil, err
	}

	names := h.Names
	switch {
	case h.Start == nil:
		if names == nil {
			names = autoNames(h.AutoFormat, len(firstRow))
		}
	case names == nil:
		processed := filterComments(lines, h.Comment)
		idx := resolveIndex(h.Start, processed)
		if idx < 0 || idx >= len(processed) {
			return nil, fmt.Errorf("%w: no header line found in table", ErrBadLine)
		}
		names, err = splitOne(h.Splitter, processed[idx])
		if err != nil {
			return nil, err
		}
	}

	if err := validateNames(names, firstRow); err != nil {
		return nil, err
	}
	return filterColumns(names, h.Include, h.Exclude, h.Splitter.Selective()), nil
}

// CommentHeader reads column names from the first line that begins with
// the comment marker, with the marker stripped.
type CommentHeader struct {
	ColumnFilter

	// Start locates the header line among the comment lines only.
	Start Locator

	// Comment matches the comment prefix. The header line is the matched
	// line with the prefix removed.
	Comment string

	Splitter Splitter
}

// Columns resolves names from the comment lines and returns the filtered
// column set.
func (h *CommentHeader) Columns(lines []string, peek RowPeek) ([]*Column, error) {
	firstRow, err := peek()
	if err != nil {
		return nil, err
	}

	names := h.Names
	if names == nil {
		re, err := regexp.Compile(h.Comment)
		if err != nil {
			return nil, fmt.Errorf("%w: comment pattern %q: %v", ErrBadOption, h.Comment, err)
		}
		var headerLines []string
		for _, line := range lines {
			if loc := re.FindStringIndex(line); loc != nil && loc[0] == 0 {
				headerLines = append(headerLines, line[loc[1]:])
			}
		}
		idx := resolveIndex(h.Start, headerLines)
		if idx < 0 || idx >= len(headerLines) {
			return nil, fmt.Errorf("%w: no header line found in table", ErrBadLine)
		}
		names, err = splitOne(h.Splitter, headerLines[idx])
		if err != nil {
			return nil, err
		}
	}

	if err := validateNames(names, firstRow); err != nil {
		return nil, err
	}
	return filterColumns(names, h.Include, h.Exclude, h.Splitter.Selective()), nil
}

// Option plumbing: headers with a locatable header line and an own splitter
// expose them so the option layer can adjust either without a type switch.

func (h *BasicHeader) setStart(loc Locator)     { h.Start = loc }
func (h *BasicHeader) setComment(c string)      { h.Comment = c }
func (h *BasicHeader) splitterRef() *Splitter   { return &h.Splitter }
func (h *CommentHeader) setStart(loc Locator)   { h.Start = loc }
func (h *CommentHeader) setComment(c string)    { h.Comment = c }
func (h *CommentHeader) splitterRef() *Splitter { return &h.Splitter }

// autoNames synthesizes n column names with the given format, 1-based.
func autoNames(format string, n int) []string {
	if format == "" {
		format = "col%d"
	}
	names := make([]string, n)
	for i := range n {
		names[i] = fmt.Sprintf(format, i+1)
	}
	return names
}

// resolveIndex evaluates a locator, mapping negative indexes to offsets
// from the end.
func resolveIndex(loc Locator, lines []string) int {
	idx := loc(lines)
	if idx < 0 {
		idx += len(lines)
	}
	return idx
}

// splitOne splits a single line and returns its fields.
func splitOne(s Splitter, line string) ([]string, error) {
	for vals, err := range s.Split([]string{line}, nil) {
		return vals, err
	}
	return nil, nil
}

// validateNames enforces that the header name count matches the first data
// row's field count.
func validateNames(names, firstRow []string) error {
	if len(names) != len(firstRow) {
		return &InconsistentTableError{
			Row:            -1,
			Expected:       len(names),
			Got:            len(firstRow),
			ExpectedValues: slices.Clone(names),
			GotValues:      slices.Clone(firstRow),
		}
	}
	return nil
}

// filterColumns applies the include filter, then the exclude filter, and
// builds the requested columns. For splitters that return every field,
// each column keeps its index within the full name ordering; for selective
// splitters, indexes are reassigned within the filtered order.
func filterColumns(names, include, exclude []string, selective bool) []*Column {
	keep := func(name string) bool {
		if include != nil && !slices.Contains(include, name) {
			return false
		}
		return !slices.Contains(exclude, name)
	}
	var cols []*Column
	for i, name := range names {
		if !keep(name) {
			continue
		}
		idx := i
		if selective {
			idx = len(cols)
		}
		cols = append(cols, &Column{Name: name, Index: idx})
	}
	return cols
}

// filterComments drops blank lines and lines matching the comment pattern
// at their start. The pattern must compile; presets use fixed patterns and
// options are validated before a read begins.
func filterComments(lines []string, comment string) []string {
	var re *regexp.Regexp
	if comment != "" {
		re = regexp.MustCompile(comment)
	}
	var out []string
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if re != nil {
			if loc := re.FindStringIndex(line); loc != nil && loc[0] == 0 {
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

func isBlank(line string) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' {
			return false
		}
	}
	return true
}
