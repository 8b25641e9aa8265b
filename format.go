package texttab

import "fmt"

// Format names a fixed bundle of reader (or writer) stage configuration
// representing one known table convention.
type Format string

const (
	// Basic is a whitespace-delimited table with a single header line at
	// the top. Lines whose first non-whitespace character is # are
	// comments.
	Basic Format = "basic"

	// NoHeader is Basic without a header line; columns are auto-named
	// col1..colN.
	NoHeader Format = "no_header"

	// CommentedHeader is Basic with the column names on a line that begins
	// with the comment character.
	CommentedHeader Format = "commented_header"

	// Tab is a tab-delimited table with a single header line.
	Tab Format = "tab"

	// Rdb is tab-delimited with a column-type line between the header and
	// the data.
	Rdb Format = "rdb"

	// Cds is the CDS/Vizier convention: a byte-by-byte description block
	// defines fixed-width column positions.
	Cds Format = "cds"

	// Daophot is the IRAF DAOphot convention: #N directive lines define
	// the column names, possibly continued across lines.
	Daophot Format = "daophot"

	// FixedWidth writes columns padded to a common width. Write-only.
	FixedWidth Format = "fixed_width"
)

var readFormats = []Format{Basic, NoHeader, CommentedHeader, Tab, Rdb, Cds, Daophot}

var writeFormats = []Format{Basic, NoHeader, CommentedHeader, Tab, Rdb, FixedWidth}

// String returns the format name.
func (f Format) String() string { return string(f) }

// ReadFormats returns the format names usable with Read.
func ReadFormats() []Format {
	out := make([]Format, len(readFormats))
	copy(out, readFormats)
	return out
}

// WriteFormats returns the format names usable with Write.
func WriteFormats() []Format {
	out := make([]Format, len(writeFormats))
	copy(out, writeFormats)
	return out
}

// ParseFormat parses a format string.
func ParseFormat(s string) (Format, error) {
	for _, f := range readFormats {
		if string(f) == s {
			return f, nil
		}
	}
	if s == string(FixedWidth) {
		return FixedWidth, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

const commentPattern = `\s*#`

// newFormatReader builds a fresh reader configured for the format. Every
// call returns new stage instances so attempts never share state.
func newFormatReader(f Format) (*Reader, error) {
	switch f {
	case Basic:
		return basicReader(), nil
	case NoHeader:
		r := basicReader()
		r.Header.(*BasicHeader).Start = nil
		r.Data.(*BasicData).Start = At(0)
		return r, nil
	case CommentedHeader:
		r := basicReader()
		r.Header = &CommentHeader{
			Start:    At(0),
			Comment:  commentPattern,
			Splitter: NewDefaultSplitter(" "),
		}
		r.Data.(*BasicData).Start = At(0)
		return r, nil
	case Tab:
		return tabReader(), nil
	case Rdb:
		r := tabReader()
		r.Data.(*BasicData).Start = At(2)
		return r, nil
	case Cds:
		return cdsReader(), nil
	case Daophot:
		return daophotReader(), nil
	default:
		return nil, fmt.Errorf("%w: %q is not a read format", ErrUnknownFormat, f)
	}
}

func basicReader() *Reader {
	return &Reader{
		Header: &BasicHeader{
			Start:    At(0),
			Comment:  commentPattern,
			Splitter: NewDefaultSplitter(" "),
		},
		Data: &BasicData{
			Start:    At(1),
			Comment:  commentPattern,
			Splitter: NewDefaultSplitter(" "),
		},
		Inputter:  LineInputter{},
		Outputter: &TableOutputter{},
	}
}

func tabReader() *Reader {
	r := basicReader()
	for _, ref := range []*Splitter{
		r.Header.(*BasicHeader).splitterRef(),
		r.Data.(*BasicData).splitterRef(),
	} {
		s := NewDefaultSplitter("\t")
		// Tabs are significant, so the line must not be trimmed before
		// splitting. Values are still trimmed.
		s.ProcessLine = nil
		*ref = s
	}
	return r
}
