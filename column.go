package texttab

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Column is the vertical collection of one named field's values across all
// data rows. A column is created during header resolution, populated
// row-by-row during the data scan, and finalized once by the outputter.
type Column struct {
	// Name is the column name, unique within a table.
	Name string

	// Index is the position the column's value occupies in a split row.
	// For delimiter-based splitters this is the position among the full
	// header names; for selective splitters (fixed-width) it is the
	// position among the requested columns only.
	Index int

	// Start and End delimit the column's byte range on a line for
	// fixed-width formats, half-open so line[Start:End] is the field.
	Start int
	End   int

	// Units and Description carry per-column metadata for annotated
	// formats.
	Units       string
	Description string

	// Raw holds the raw string values, one per data row, in row order.
	Raw []string

	// Mask parallels Raw when fill rules were applied to this column:
	// true marks a row whose value was a fill substitution. Nil when no
	// fill rule was in scope for the column.
	Mask []bool

	// Data holds the converted values: []int64, []float64, or []string.
	// Set once by the outputter.
	Data any
}

// Ints returns the converted values when the column converted as integers.
func (c *Column) Ints() ([]int64, bool) {
	v, ok := c.Data.([]int64)
	return v, ok
}

// Floats returns the converted values when the column converted as floats.
func (c *Column) Floats() ([]float64, bool) {
	v, ok := c.Data.([]float64)
	return v, ok
}

// Strings returns the converted values when the column was left as text.
func (c *Column) Strings() ([]string, bool) {
	v, ok := c.Data.([]string)
	return v, ok
}

// Len returns the number of converted values, or the raw count when the
// column has not been converted yet.
func (c *Column) Len() int {
	switch v := c.Data.(type) {
	case []int64:
		return len(v)
	case []float64:
		return len(v)
	case []string:
		return len(v)
	}
	return len(c.Raw)
}

// cell formats the converted value at row i. Floats use the shortest
// representation that round-trips.
func (c *Column) cell(i int) string {
	switch v := c.Data.(type) {
	case []int64:
		return strconv.FormatInt(v[i], 10)
	case []float64:
		return strconv.FormatFloat(v[i], 'g', -1, 64)
	case []string:
		return v[i]
	}
	return c.Raw[i]
}

// NewColumn builds a standalone column from typed values for assembling
// tables that were not read from text. Values must be []int64, []float64,
// or []string.
func NewColumn(name string, values any) (*Column, error) {
	switch values.(type) {
	case []int64, []float64, []string:
	default:
		return nil, fmt.Errorf("%w: column %q values must be []int64, []float64, or []string, got %T",
			ErrBadOption, name, values)
	}
	return &Column{Name: name, Data: values}, nil
}

// Table is the columnar output of a read: a lookup by column name plus an
// explicit column order.
type Table struct {
	names []string
	cols  map[string]*Column
}

// NewTable assembles a table from ordered columns. Column names must be
// unique and all columns must have the same length.
func NewTable(cols ...*Column) (*Table, error) {
	t := &Table{cols: make(map[string]*Column, len(cols))}
	for _, col := range cols {
		if _, dup := t.cols[col.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrBadOption, col.Name)
		}
		if col.Len() != cols[0].Len() {
			return nil, &InconsistentTableError{
				Row:            -1,
				Expected:       cols[0].Len(),
				Got:            col.Len(),
				ExpectedValues: []string{cols[0].Name},
				GotValues:      []string{col.Name},
			}
		}
		t.names = append(t.names, col.Name)
		t.cols[col.Name] = col
	}
	return t, nil
}

// Names returns the column names in their original formatted order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.cols[name]
	return c, ok
}

// Columns returns the columns in their original formatted order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, t.cols[name])
	}
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.names) == 0 {
		return 0
	}
	return t.cols[t.names[0]].Len()
}

// MarshalYAML encodes the table as a mapping from column name to value
// sequence, preserving column order. Satisfies yaml.Marshaler.
func (t *Table) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range t.names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		col := t.cols[name]
		for i := range col.Len() {
			var val yaml.Node
			if err := val.Encode(colValue(col, i)); err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, &val)
		}
		root.Content = append(root.Content, key, seq)
	}
	return root, nil
}

// colValue returns the typed value at row i for encoding.
func colValue(c *Column, i int) any {
	switch v := c.Data.(type) {
	case []int64:
		return v[i]
	case []float64:
		return v[i]
	case []string:
		return v[i]
	}
	return c.Raw[i]
}
