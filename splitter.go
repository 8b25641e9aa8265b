package texttab

import (
	"fmt"
	"iter"
	"strings"
)

// WhitespaceDelimiter selects splitting on runs of whitespace rather than a
// single delimiter character.
const WhitespaceDelimiter = `\s`

// Splitter turns text lines into ordered field slices, one per line, in
// input order. The cols argument carries the resolved columns for splitters
// that slice by column position; delimiter-based splitters ignore it.
type Splitter interface {
	Split(lines []string, cols []*Column) iter.Seq2[[]string, error]

	// Selective reports whether Split emits fields only for the requested
	// columns instead of every field on the line. It decides the column
	// re-indexing policy after include/exclude filtering.
	Selective() bool
}

// DefaultSplitter splits lines on a single-character delimiter with
// optional quoting. Quoted fields may contain the delimiter, a doubled
// quote is a literal quote, and an escape character removes special meaning
// from the following character.
//
// ProcessLine runs on each line before splitting and ProcessValue on each
// field after; nil disables the hook. [NewDefaultSplitter] presets both to
// whitespace trimming.
type DefaultSplitter struct {
	// Delimiter separates fields. It must be a single character, or
	// [WhitespaceDelimiter] to split on whitespace runs.
	Delimiter string

	// Quote is the field quoting character. Zero disables quoting.
	Quote rune

	// Escape removes special meaning from the next character. Zero
	// disables escaping.
	Escape rune

	// SkipInitialSpace ignores whitespace immediately following the
	// delimiter.
	SkipInitialSpace bool

	// ProcessLine transforms a line before splitting.
	ProcessLine func(string) string

	// ProcessValue transforms each field after splitting.
	ProcessValue func(string) string
}

// NewDefaultSplitter returns a quoted splitter for the given delimiter with
// the conventional defaults: double-quote quoting, whitespace trimming on
// lines and values, and whitespace skipped after the delimiter.
func NewDefaultSplitter(delimiter string) *DefaultSplitter {
	return &DefaultSplitter{
		Delimiter:        delimiter,
		Quote:            '"',
		SkipInitialSpace: true,
		ProcessLine:      strings.TrimSpace,
		ProcessValue:     strings.TrimSpace,
	}
}

// Selective reports false: every field on the line is emitted.
func (s *DefaultSplitter) Selective() bool { return false }

// Split returns one field slice per line. A malformed quoted field stops
// the sequence with an error naming the line.
func (s *DefaultSplitter) Split(lines []string, _ []*Column) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for _, line := range lines {
			if s.ProcessLine != nil {
				line = s.ProcessLine(line)
			}
			vals, err := s.splitLine(line)
			if err != nil {
				yield(nil, err)
				return
			}
			if s.ProcessValue != nil {
				for i, v := range vals {
					vals[i] = s.ProcessValue(v)
				}
			}
			if !yield(vals, nil) {
				return
			}
		}
	}
}

func (s *DefaultSplitter) splitLine(line string) ([]string, error) {
	delim := s.Delimiter
	if delim == WhitespaceDelimiter {
		line = collapseWhitespace(line)
		delim = " "
	}
	if len([]rune(delim)) != 1 {
		return nil, fmt.Errorf("%w: delimiter %q must be a single character", ErrBadOption, s.Delimiter)
	}
	d := []rune(delim)[0]

	var vals []string
	var field strings.Builder
	runes := []rune(line)
	i := 0
	atFieldStart := true
	for i < len(runes) {
		r := runes[i]
		switch {
		case atFieldStart && s.SkipInitialSpace && r == ' ' && d != ' ':
			i++
		case atFieldStart && s.Quote != 0 && r == s.Quote:
			rest, consumed, err := s.readQuoted(runes[i:], line)
			if err != nil {
				return nil, err
			}
			field.WriteString(rest)
			i += consumed
			atFieldStart = false
		case s.Escape != 0 && r == s.Escape && i+1 < len(runes):
			field.WriteRune(runes[i+1])
			i += 2
			atFieldStart = false
		case r == d:
			vals = append(vals, field.String())
			field.Reset()
			i++
			atFieldStart = true
			if s.SkipInitialSpace {
				// Whitespace right after the delimiter is not field data.
				// With a space delimiter this merges runs of spaces.
				for i < len(runes) && runes[i] == ' ' {
					i++
				}
			}
		default:
			field.WriteRune(r)
			i++
			atFieldStart = false
		}
	}
	vals = append(vals, field.String())
	return vals, nil
}

// readQuoted consumes a quoted field starting at the opening quote. It
// returns the unquoted content and the number of runes consumed.
func (s *DefaultSplitter) readQuoted(runes []rune, line string) (string, int, error) {
	var field strings.Builder
	i := 1 // past the opening quote
	for i < len(runes) {
		r := runes[i]
		switch {
		case s.Escape != 0 && r == s.Escape && i+1 < len(runes):
			field.WriteRune(runes[i+1])
			i += 2
		case r == s.Quote:
			if i+1 < len(runes) && runes[i+1] == s.Quote {
				// Doubled quote is a literal quote.
				field.WriteRune(s.Quote)
				i += 2
				continue
			}
			return field.String(), i + 1, nil
		default:
			field.WriteRune(r)
			i++
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated quote in line %q", ErrBadLine, line)
}

func collapseWhitespace(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// FixedWidthSplitter slices each line by the Start/End byte positions of
// the requested columns. It emits exactly one field per requested column,
// so skipped columns never appear in its output. Lines shorter than a
// column's range yield the available substring.
type FixedWidthSplitter struct {
	// ProcessValue transforms each field after slicing; nil disables it.
	ProcessValue func(string) string
}

// NewFixedWidthSplitter returns a positional splitter that trims each
// sliced value.
func NewFixedWidthSplitter() *FixedWidthSplitter {
	return &FixedWidthSplitter{ProcessValue: strings.TrimSpace}
}

// Selective reports true: only the requested columns are emitted.
func (s *FixedWidthSplitter) Selective() bool { return true }

// Split slices each line at the column positions.
func (s *FixedWidthSplitter) Split(lines []string, cols []*Column) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for _, line := range lines {
			vals := make([]string, len(cols))
			for i, col := range cols {
				vals[i] = slicePositional(line, col.Start, col.End)
				if s.ProcessValue != nil {
					vals[i] = s.ProcessValue(vals[i])
				}
			}
			if !yield(vals, nil) {
				return
			}
		}
	}
}

func slicePositional(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	if end <= start {
		return ""
	}
	return line[start:end]
}
