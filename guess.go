package texttab

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// badNameEdges are characters that never begin or end a real column name.
// A structurally successful parse whose names hit this set (or are purely
// numeric, or empty) is accidentally parsed garbage, not a table.
const badNameEdges = " ,|\t'\""

// guessRead tries the caller's exact configuration, then each well-known
// candidate configuration, until one parses without structural error and
// its column names look plausible. Candidates are tried strictly in order
// with fresh reader instances, so a failed attempt leaks nothing into the
// next. When everything is rejected, one last attempt runs the caller's
// configuration without the plausibility heuristics before giving up.
func guessRead(input any, userOpts []Option) (*Table, error) {
	candidates := append([][]Option{nil}, guessCandidates()...)
	for _, candidate := range candidates {
		merged, ok := mergeOptions(candidate, userOpts)
		if !ok {
			// The caller explicitly fixed a parameter this candidate
			// disagrees on; overriding it silently would be wrong.
			continue
		}
		table, err := attemptRead(input, merged)
		if err != nil {
			if errors.Is(err, ErrConversion) {
				// Guessing retries structural choices only. A column that
				// cannot convert will not convert under any delimiter.
				return nil, err
			}
			if isStructural(err) {
				continue
			}
			return nil, err
		}
		if !plausibleTable(table) {
			continue
		}
		return table, nil
	}

	// Every candidate failed or was rejected: retry the caller's exact
	// configuration without the name heuristics.
	table, err := attemptRead(input, userOpts)
	if err != nil {
		if errors.Is(err, ErrInconsistentTable) || errors.Is(err, ErrBadLine) {
			return nil, fmt.Errorf("%w: unable to guess table format", ErrInconsistentTable)
		}
		return nil, err
	}
	return table, nil
}

func attemptRead(input any, opts []Option) (*Table, error) {
	r, err := newReaderFrom(opts)
	if err != nil {
		return nil, err
	}
	return r.Read(input)
}

// isStructural reports whether the error is one a different format
// candidate could cure.
func isStructural(err error) bool {
	return errors.Is(err, ErrInconsistentTable) ||
		errors.Is(err, ErrBadLine) ||
		errors.Is(err, ErrInputShape) ||
		errors.Is(err, ErrBadOption)
}

// guessCandidates returns the ranked list of well-known format
// configurations: the distinctive formats first, then the cartesian product
// of header conventions, delimiters, and quote characters.
func guessCandidates() [][]Option {
	candidates := [][]Option{
		{WithFormat(Rdb)},
		{WithFormat(Tab)},
		{WithFormat(Cds)},
		{WithFormat(Daophot)},
	}
	for _, format := range []Format{CommentedHeader, Basic, NoHeader} {
		for _, delimiter := range []string{"|", ",", " ", WhitespaceDelimiter} {
			for _, quote := range []rune{'"', '\''} {
				candidates = append(candidates, []Option{
					WithFormat(format),
					Delimiter(delimiter),
					Quote(quote),
				})
			}
		}
	}
	return candidates
}

// mergeOptions lays the caller's options over a candidate's. When the
// caller fixed an option the candidate also defines with a different
// value, the candidate is rejected (ok=false) rather than overridden.
// The guess option never reaches a reader.
func mergeOptions(candidate, user []Option) ([]Option, bool) {
	merged := slices.Clone(candidate)
	for _, opt := range user {
		if opt.name == "guess" {
			continue
		}
		if v, ok := optionValue(candidate, opt.name); ok {
			if !reflect.DeepEqual(v, opt.value) {
				return nil, false
			}
			continue
		}
		merged = append(merged, opt)
	}
	return merged, true
}

// plausibleTable applies the guess acceptance heuristics: at least two
// columns, and no column name that is purely numeric, empty, or edged with
// delimiter or quote characters.
func plausibleTable(t *Table) bool {
	names := t.Names()
	if len(names) <= 1 {
		return false
	}
	for _, name := range names {
		if name == "" || isNumeric(name) {
			return false
		}
		if strings.ContainsRune(badNameEdges, rune(name[0])) ||
			strings.ContainsRune(badNameEdges, rune(name[len(name)-1])) {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
