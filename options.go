package texttab

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Option is a single named read or write customization. Options carry their
// name so surfaces can validate the recognized set and the guesser can
// merge caller options over candidate options key by key.
type Option struct {
	name  string
	value any
}

// Option names recognized by the read surface.
var readOptionNames = map[string]bool{
	"format":             true,
	"inputter":           true,
	"outputter":          true,
	"delimiter":          true,
	"comment":            true,
	"quote":              true,
	"header_start":       true,
	"data_start":         true,
	"data_end":           true,
	"converters":         true,
	"header_splitter":    true,
	"data_splitter":      true,
	"names":              true,
	"include_names":      true,
	"exclude_names":      true,
	"fill_values":        true,
	"fill_include_names": true,
	"fill_exclude_names": true,
	"guess":              true,
}

// Option names recognized by the write surface.
var writeOptionNames = map[string]bool{
	"format":        true,
	"delimiter":     true,
	"write_comment": true,
	"quote":         true,
	"cell_formats":  true,
	"names":         true,
	"include_names": true,
	"exclude_names": true,
}

// WithFormat selects the format preset. Read default is [Basic].
func WithFormat(f Format) Option { return Option{"format", f} }

// WithInputter overrides the input normalization stage.
func WithInputter(in Inputter) Option { return Option{"inputter", in} }

// WithOutputter overrides the table assembly stage.
func WithOutputter(out Outputter) Option { return Option{"outputter", out} }

// Delimiter sets the field delimiter for both the header and data
// splitters. Use [WhitespaceDelimiter] to split on whitespace runs.
func Delimiter(d string) Option { return Option{"delimiter", d} }

// Comment sets the comment-line pattern for both the header and the data.
func Comment(pattern string) Option { return Option{"comment", pattern} }

// Quote sets the field quoting character for both splitters.
func Quote(q rune) Option { return Option{"quote", q} }

// HeaderStart sets the header line index, counted over non-comment lines.
func HeaderStart(i int) Option { return Option{"header_start", i} }

// DataStart sets the first data line index, counted over non-comment
// lines.
func DataStart(i int) Option { return Option{"data_start", i} }

// DataEnd sets one past the last data line index; negative counts from the
// end.
func DataEnd(i int) Option { return Option{"data_end", i} }

// Converters overrides the converter list for the named columns.
func Converters(c map[string][]Converter) Option { return Option{"converters", c} }

// HeaderSplitter overrides the splitter used on the header line.
func HeaderSplitter(s Splitter) Option { return Option{"header_splitter", s} }

// DataSplitter overrides the splitter used on data lines.
func DataSplitter(s Splitter) Option { return Option{"data_splitter", s} }

// Names supplies the column names instead of reading them from the table.
func Names(names ...string) Option { return Option{"names", names} }

// IncludeNames keeps only the named columns in the output.
func IncludeNames(names ...string) Option { return Option{"include_names", names} }

// ExcludeNames drops the named columns, applied after [IncludeNames].
func ExcludeNames(names ...string) Option { return Option{"exclude_names", names} }

// FillValues maps bad literals to their replacements; substituted rows are
// recorded in the column masks.
func FillValues(fills map[string]string) Option { return Option{"fill_values", fills} }

// FillIncludeNames restricts fill substitution to the named columns.
func FillIncludeNames(names ...string) Option { return Option{"fill_include_names", names} }

// FillExcludeNames exempts the named columns from fill substitution,
// applied after [FillIncludeNames].
func FillExcludeNames(names ...string) Option { return Option{"fill_exclude_names", names} }

// GuessFormat enables or disables format auto-detection for one Read,
// overriding the process default (see [SetGuess]).
func GuessFormat(on bool) Option { return Option{"guess", on} }

// WriteComment sets the marker written before comment and header-comment
// lines.
func WriteComment(marker string) Option { return Option{"write_comment", marker} }

// CellFormats sets per-column output formats: either a fmt verb string
// such as "%.3f" or a func(any) string.
func CellFormats(formats map[string]any) Option { return Option{"cell_formats", formats} }

// validateOptions checks every option name against the recognized set and
// reports all offenders at once.
func validateOptions(opts []Option, recognized map[string]bool, surface string) error {
	var bad []string
	for _, opt := range opts {
		if !recognized[opt.name] {
			bad = append(bad, opt.name)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	sort.Strings(bad)
	return fmt.Errorf("%w: option(s) %s not allowed for %s", ErrBadOption, strings.Join(bad, ", "), surface)
}

// optionValue returns the value of the named option and whether it was
// supplied.
func optionValue(opts []Option, name string) (any, bool) {
	for _, opt := range opts {
		if opt.name == name {
			return opt.value, true
		}
	}
	return nil, false
}

// NewReader builds a reader from the format preset plus any overrides. The
// guess option is not meaningful here and is rejected; use [Read] for
// guessing.
func NewReader(opts ...Option) (*Reader, error) {
	if err := validateOptions(opts, readOptionNames, "a reader"); err != nil {
		return nil, err
	}
	if _, ok := optionValue(opts, "guess"); ok {
		return nil, fmt.Errorf("%w: option guess not allowed for a reader", ErrBadOption)
	}
	return newReaderFrom(opts)
}

// newReaderFrom builds a fresh, fully configured reader. Option names are
// assumed validated; the guess option is ignored.
func newReaderFrom(opts []Option) (*Reader, error) {
	format := Basic
	if v, ok := optionValue(opts, "format"); ok {
		format = v.(Format)
	}
	r, err := newFormatReader(format)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := applyReadOption(r, opt); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func applyReadOption(r *Reader, opt Option) error {
	switch opt.name {
	case "format", "guess":
		// Handled by the caller.
	case "inputter":
		r.Inputter = opt.value.(Inputter)
	case "outputter":
		r.Outputter = opt.value.(Outputter)
	case "delimiter":
		d := opt.value.(string)
		if d != WhitespaceDelimiter && len([]rune(d)) != 1 {
			return fmt.Errorf("%w: delimiter %q must be a single character", ErrBadOption, d)
		}
		forEachDefaultSplitter(r, func(s *DefaultSplitter) { s.Delimiter = d })
	case "quote":
		q := opt.value.(rune)
		forEachDefaultSplitter(r, func(s *DefaultSplitter) { s.Quote = q })
	case "comment":
		pattern := opt.value.(string)
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%w: comment pattern %q: %v", ErrBadOption, pattern, err)
		}
		if h, ok := r.Header.(interface{ setComment(string) }); ok {
			h.setComment(pattern)
		}
		if d, ok := r.Data.(interface{ setComment(string) }); ok {
			d.setComment(pattern)
		}
	case "header_start":
		if h, ok := r.Header.(interface{ setStart(Locator) }); ok {
			h.setStart(At(opt.value.(int)))
		}
	case "data_start":
		if d, ok := r.Data.(interface{ setStart(Locator) }); ok {
			d.setStart(At(opt.value.(int)))
		}
	case "data_end":
		if d, ok := r.Data.(interface{ setEnd(Locator) }); ok {
			d.setEnd(At(opt.value.(int)))
		}
	case "converters":
		if o, ok := r.Outputter.(*TableOutputter); ok {
			o.Converters = opt.value.(map[string][]Converter)
		}
	case "header_splitter":
		if h, ok := r.Header.(interface{ splitterRef() *Splitter }); ok {
			*h.splitterRef() = opt.value.(Splitter)
		}
	case "data_splitter":
		if d, ok := r.Data.(interface{ splitterRef() *Splitter }); ok {
			*d.splitterRef() = opt.value.(Splitter)
		}
	case "names":
		if h, ok := r.Header.(columnFiltered); ok {
			h.filter().Names = opt.value.([]string)
		}
	case "include_names":
		if h, ok := r.Header.(columnFiltered); ok {
			h.filter().Include = opt.value.([]string)
		}
	case "exclude_names":
		if h, ok := r.Header.(columnFiltered); ok {
			h.filter().Exclude = opt.value.([]string)
		}
	case "fill_values":
		if d, ok := r.Data.(interface{ fillRef() *BasicData }); ok {
			d.fillRef().FillValues = opt.value.(map[string]string)
		}
	case "fill_include_names":
		if d, ok := r.Data.(interface{ fillRef() *BasicData }); ok {
			d.fillRef().FillInclude = opt.value.([]string)
		}
	case "fill_exclude_names":
		if d, ok := r.Data.(interface{ fillRef() *BasicData }); ok {
			d.fillRef().FillExclude = opt.value.([]string)
		}
	default:
		return fmt.Errorf("%w: option %s not allowed for a reader", ErrBadOption, opt.name)
	}
	return nil
}

func forEachDefaultSplitter(r *Reader, apply func(*DefaultSplitter)) {
	if h, ok := r.Header.(interface{ splitterRef() *Splitter }); ok {
		if s, ok := (*h.splitterRef()).(*DefaultSplitter); ok {
			apply(s)
		}
	}
	if d, ok := r.Data.(interface{ splitterRef() *Splitter }); ok {
		if s, ok := (*d.splitterRef()).(*DefaultSplitter); ok {
			apply(s)
		}
	}
}
