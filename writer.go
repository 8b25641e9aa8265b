package texttab

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer serializes a [Table] back to tabular text.
type Writer struct {
	// Format selects the output convention; the write formats are
	// [Basic], [NoHeader], [CommentedHeader], [Tab], [Rdb], and
	// [FixedWidth].
	Format Format

	// Delimiter joins fields. Defaults to the format's convention.
	Delimiter string

	// Quote wraps fields containing the delimiter, the quote itself, or
	// leading/trailing whitespace. Zero disables quoting.
	Quote rune

	// CommentMarker prefixes the header line of [CommentedHeader] output.
	CommentMarker string

	// CellFormats maps a column name to either a fmt verb string such as
	// "%.3f" or a func(any) string.
	CellFormats map[string]any

	// Names selects and orders the columns to write; nil writes the
	// table's own order.
	Names []string

	// Include keeps only the named columns; nil keeps all.
	Include []string

	// Exclude drops the named columns, applied after Include.
	Exclude []string
}

// NewWriter builds a writer from the format preset plus any overrides.
func NewWriter(opts ...Option) (*Writer, error) {
	if err := validateOptions(opts, writeOptionNames, "a writer"); err != nil {
		return nil, err
	}
	w := &Writer{
		Format:        Basic,
		Quote:         '"',
		CommentMarker: "# ",
	}
	for _, opt := range opts {
		switch opt.name {
		case "format":
			w.Format = opt.value.(Format)
		case "delimiter":
			w.Delimiter = opt.value.(string)
		case "quote":
			w.Quote = opt.value.(rune)
		case "write_comment":
			w.CommentMarker = opt.value.(string)
		case "cell_formats":
			w.CellFormats = opt.value.(map[string]any)
		case "names":
			w.Names = opt.value.([]string)
		case "include_names":
			w.Include = opt.value.([]string)
		case "exclude_names":
			w.Exclude = opt.value.([]string)
		}
	}
	if !slices.Contains(writeFormats, w.Format) {
		return nil, fmt.Errorf("%w: %q is not a write format", ErrUnknownFormat, w.Format)
	}
	if w.Delimiter == "" {
		switch w.Format {
		case Tab, Rdb:
			w.Delimiter = "\t"
		default:
			w.Delimiter = " "
		}
	}
	for name, f := range w.CellFormats {
		switch f.(type) {
		case string, func(any) string:
		default:
			return nil, fmt.Errorf("%w: cell format for column %q must be a fmt string or func(any) string, got %T",
				ErrBadOption, name, f)
		}
	}
	return w, nil
}

// Write serializes the table and writes it to output, which is either a
// file path (created, written, closed) or an io.Writer.
func Write(t *Table, output any, opts ...Option) error {
	w, err := NewWriter(opts...)
	if err != nil {
		return err
	}
	return w.Write(t, output)
}

// Write serializes the table to the output sink.
func (w *Writer) Write(t *Table, output any) error {
	switch sink := output.(type) {
	case io.Writer:
		return w.write(t, sink)
	case string:
		f, err := os.Create(sink)
		if err != nil {
			return err
		}
		if err := w.write(t, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("%w: output must be a file path or io.Writer, got %T", ErrInputShape, output)
	}
}

func (w *Writer) write(t *Table, out io.Writer) error {
	cols, err := w.selectColumns(t)
	if err != nil {
		return err
	}
	if w.Format == FixedWidth {
		return w.writeFixedWidth(cols, out)
	}
	return w.writeDelimited(cols, out)
}

// selectColumns resolves the output columns: explicit name order when
// given, then the include/exclude filters.
func (w *Writer) selectColumns(t *Table) ([]*Column, error) {
	order := w.Names
	if order == nil {
		order = t.Names()
	}
	var cols []*Column
	for _, name := range order {
		col, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: no column named %q in table", ErrBadOption, name)
		}
		if w.Include != nil && !slices.Contains(w.Include, name) {
			continue
		}
		if slices.Contains(w.Exclude, name) {
			continue
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (w *Writer) writeDelimited(cols []*Column, out io.Writer) error {
	delim := []rune(w.Delimiter)
	if len(delim) != 1 {
		return fmt.Errorf("%w: delimiter %q must be a single character", ErrBadOption, w.Delimiter)
	}

	switch w.Format {
	case NoHeader:
	case CommentedHeader:
		names := make([]string, len(cols))
		for i, col := range cols {
			names[i] = col.Name
		}
		if _, err := fmt.Fprintf(out, "%s%s\n", w.CommentMarker, strings.Join(names, w.Delimiter)); err != nil {
			return err
		}
	default:
		if err := w.writeRow(out, delim[0], headerRow(cols)); err != nil {
			return err
		}
		if w.Format == Rdb {
			if err := w.writeRow(out, delim[0], rdbTypeRow(cols)); err != nil {
				return err
			}
		}
	}

	for i := range rowCount(cols) {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = w.formatCell(col, i)
		}
		if err := w.writeRow(out, delim[0], row); err != nil {
			return err
		}
	}
	return nil
}

// writeRow writes one delimited line. The standard double-quote dialect
// goes through encoding/csv; any other quote character is joined manually.
func (w *Writer) writeRow(out io.Writer, delim rune, row []string) error {
	if w.Quote == '"' {
		cw := csv.NewWriter(out)
		cw.Comma = delim
		if err := cw.Write(row); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}
	quoted := make([]string, len(row))
	for i, field := range row {
		quoted[i] = w.quoteField(field, delim)
	}
	_, err := fmt.Fprintln(out, strings.Join(quoted, string(delim)))
	return err
}

func (w *Writer) quoteField(field string, delim rune) string {
	if w.Quote == 0 {
		return field
	}
	needs := strings.ContainsRune(field, delim) ||
		strings.ContainsRune(field, w.Quote) ||
		strings.TrimSpace(field) != field
	if !needs {
		return field
	}
	q := string(w.Quote)
	return q + strings.ReplaceAll(field, q, q+q) + q
}

// writeFixedWidth pads every column to its widest cell, header included,
// and joins with a single space. Display width is measured in terminal
// cells so wide characters align.
func (w *Writer) writeFixedWidth(cols []*Column, out io.Writer) error {
	widths := make([]int, len(cols))
	header := headerRow(cols)
	for i, name := range header {
		widths[i] = runewidth.StringWidth(name)
	}
	n := rowCount(cols)
	cells := make([][]string, n)
	for i := range n {
		cells[i] = make([]string, len(cols))
		for j, col := range cols {
			cells[i][j] = w.formatCell(col, i)
			if width := runewidth.StringWidth(cells[i][j]); width > widths[j] {
				widths[j] = width
			}
		}
	}
	if err := writePaddedRow(out, header, widths); err != nil {
		return err
	}
	for i := range n {
		if err := writePaddedRow(out, cells[i], widths); err != nil {
			return err
		}
	}
	return nil
}

func writePaddedRow(out io.Writer, row []string, widths []int) error {
	padded := make([]string, len(row))
	for i, cell := range row {
		padded[i] = runewidth.FillRight(cell, widths[i])
	}
	_, err := fmt.Fprintln(out, strings.TrimRight(strings.Join(padded, " "), " "))
	return err
}

func (w *Writer) formatCell(col *Column, row int) string {
	switch f := w.CellFormats[col.Name].(type) {
	case string:
		return fmt.Sprintf(f, colValue(col, row))
	case func(any) string:
		return f(colValue(col, row))
	}
	return col.cell(row)
}

func headerRow(cols []*Column) []string {
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}

// rdbTypeRow emits the RDB column-type line: N for numeric columns, S for
// text.
func rdbTypeRow(cols []*Column) []string {
	types := make([]string, len(cols))
	for i, col := range cols {
		switch col.Data.(type) {
		case []int64, []float64:
			types[i] = "N"
		default:
			types[i] = "S"
		}
	}
	return types
}

func rowCount(cols []*Column) int {
	if len(cols) == 0 {
		return 0
	}
	return cols[0].Len()
}
