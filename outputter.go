package texttab

import (
	"fmt"
	"strconv"
)

// Converter converts a whole column of raw strings into a typed slice.
// A converter that fails on any value in the column is discarded and the
// next one in the column's list is tried.
type Converter func(vals []string) (any, error)

// ConvertInt converts every value to int64.
func ConvertInt(vals []string) (any, error) {
	out := make([]int64, len(vals))
	for i, v := range vals {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// ConvertFloat converts every value to float64.
func ConvertFloat(vals []string) (any, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// ConvertString leaves the values as text.
func ConvertString(vals []string) (any, error) {
	out := make([]string, len(vals))
	copy(out, vals)
	return out, nil
}

// DefaultConverters is the conventional fallback chain: try integers, then
// floats, then leave the column as text.
func DefaultConverters() []Converter {
	return []Converter{ConvertInt, ConvertFloat, ConvertString}
}

// Outputter converts the accumulated raw values of each column and
// assembles the output table.
type Outputter interface {
	Table(cols []*Column) (*Table, error)
}

// TableOutputter converts each column with the first converter in its list
// that succeeds for every value. The decision is per column, never per
// value: the whole column must convert uniformly.
type TableOutputter struct {
	// Converters overrides the converter list for the named columns.
	Converters map[string][]Converter
}

// Table converts all columns and assembles them in order.
func (o *TableOutputter) Table(cols []*Column) (*Table, error) {
	for _, col := range cols {
		converters := o.Converters[col.Name]
		if converters == nil {
			converters = DefaultConverters()
		}
		if err := convertColumn(col, converters); err != nil {
			return nil, err
		}
	}
	return NewTable(cols...)
}

func convertColumn(col *Column, converters []Converter) error {
	for _, convert := range converters {
		data, err := convert(col.Raw)
		if err != nil {
			continue
		}
		col.Data = data
		return nil
	}
	return fmt.Errorf("%w: column %q", ErrConversion, col.Name)
}
