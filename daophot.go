package texttab

import (
	"regexp"
	"strings"
)

// daophotNameDirective matches a #N directive carrying column names.
var daophotNameDirective = regexp.MustCompile(`#N([^#]+)#?`)

// DaophotHeader reads column names from the #N directive lines of an IRAF
// DAOphot header. Directives may span several lines; the name tokens are
// concatenated in order.
type DaophotHeader struct {
	ColumnFilter
}

// Columns collects names from the #N directives within the leading comment
// block and validates them against the first data row.
func (h *DaophotHeader) Columns(lines []string, peek RowPeek) ([]*Column, error) {
	firstRow, err := peek()
	if err != nil {
		return nil, err
	}

	names := h.Names
	if names == nil {
		for _, line := range lines {
			if !strings.HasPrefix(line, "#") {
				break // end of header block
			}
			if m := daophotNameDirective.FindStringSubmatch(line); m != nil {
				names = append(names, strings.Fields(m[1])...)
			}
		}
	}

	if err := validateNames(names, firstRow); err != nil {
		return nil, err
	}
	return filterColumns(names, h.Include, h.Exclude, false), nil
}

func daophotReader() *Reader {
	return &Reader{
		Header: &DaophotHeader{},
		Data: &BasicData{
			Start:    At(0),
			Comment:  commentPattern,
			Splitter: NewDefaultSplitter(" "),
		},
		Inputter:  ContinuationInputter{},
		Outputter: &TableOutputter{},
	}
}
