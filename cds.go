package texttab

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	cdsDescriptionMarker = regexp.MustCompile(`(?i)^Byte-by-byte Description`)

	// One column definition: optional start byte, end byte, format, units,
	// name, description.
	cdsColumnDef = regexp.MustCompile(`^\s*(?:(\d+)\s*-)?\s*(\d+)\s+([\w.]+)\s+(\S+)\s+(\S+)\s+(\S.*)$`)
)

// CdsHeader reads the byte-by-byte description block of a CDS/Vizier table,
// which defines each column's byte positions, units, name, and description.
// Description lines that do not match the column grammar continue the
// previous column's description.
type CdsHeader struct {
	ColumnFilter
}

// Columns parses the description block into positioned columns. CDS columns
// never consult the data, so no peek happens here.
func (h *CdsHeader) Columns(lines []string, _ RowPeek) ([]*Column, error) {
	start := -1
	for i, line := range lines {
		if cdsDescriptionMarker.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: no byte-by-byte description section found", ErrBadLine)
	}

	var cols []*Column
	// The marker line is followed by a rule, the block's own column
	// headings, and another rule before the definitions begin.
	for _, line := range lines[min(start+4, len(lines)):] {
		if isSectionDelimiter(line) {
			break
		}
		m := cdsColumnDef.FindStringSubmatch(line)
		if m == nil {
			// Continuation of the previous column's description.
			if len(cols) == 0 {
				return nil, fmt.Errorf("%w: line %q not parsable as CDS header", ErrBadLine, line)
			}
			cols[len(cols)-1].Description += strings.TrimSpace(line)
			continue
		}
		end, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: line %q not parsable as CDS header", ErrBadLine, line)
		}
		first := end
		if m[1] != "" {
			if first, err = strconv.Atoi(m[1]); err != nil {
				return nil, fmt.Errorf("%w: line %q not parsable as CDS header", ErrBadLine, line)
			}
		}
		cols = append(cols, &Column{
			Name:        m[5],
			Start:       first - 1,
			End:         end,
			Units:       m[4],
			Description: m[6],
		})
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: empty byte-by-byte description section", ErrBadLine)
	}

	// The fixed-width splitter emits only the requested columns, so the
	// kept columns are re-indexed within the filtered order.
	var kept []*Column
	for _, col := range cols {
		if h.Include != nil && !slices.Contains(h.Include, col.Name) {
			continue
		}
		if slices.Contains(h.Exclude, col.Name) {
			continue
		}
		col.Index = len(kept)
		kept = append(kept, col)
	}
	return kept, nil
}

// CdsData locates the data section: everything after the last section
// delimiter line (a run of - or = characters).
type CdsData struct {
	BasicData
}

// Lines returns the lines after the last section delimiter, with the usual
// start/end slicing applied.
func (d *CdsData) Lines(lines []string) ([]string, error) {
	last := -1
	for i, line := range lines {
		if isSectionDelimiter(line) {
			last = i
		}
	}
	if last < 0 {
		return nil, fmt.Errorf("%w: no section delimiter found in CDS table", ErrBadLine)
	}
	data := lines[last+1:]
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

func isSectionDelimiter(line string) bool {
	return strings.HasPrefix(line, "------") || strings.HasPrefix(line, "=======")
}

func cdsReader() *Reader {
	return &Reader{
		Header: &CdsHeader{},
		Data: &CdsData{BasicData: BasicData{
			Splitter: NewFixedWidthSplitter(),
		}},
		Inputter:  LineInputter{},
		Outputter: &TableOutputter{},
	}
}
