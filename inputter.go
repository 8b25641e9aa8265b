package texttab

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Inputter normalizes table input into an ordered slice of lines.
//
// Accepted input shapes:
//   - []string: used as the line sequence directly
//   - string: read as a file when it contains no newline, otherwise split
//     on line separators
//   - []byte: split on line separators
//   - io.Reader: drained and split on line separators
//
// Anything else fails with [ErrInputShape].
type Inputter interface {
	Lines(input any) ([]string, error)
}

// LineInputter is the default input normalizer. It applies no
// post-processing to the line sequence.
type LineInputter struct{}

// Lines normalizes input into lines.
func (LineInputter) Lines(input any) ([]string, error) {
	switch v := input.(type) {
	case []string:
		return v, nil
	case string:
		if !strings.Contains(v, "\n") {
			data, err := os.ReadFile(v)
			if err != nil {
				return nil, err
			}
			return splitLines(string(data)), nil
		}
		return splitLines(v), nil
	case []byte:
		return splitLines(string(v)), nil
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return nil, err
		}
		return splitLines(string(data)), nil
	default:
		return nil, fmt.Errorf("%w: input must be a string (filename or data), []string, []byte, or io.Reader, got %T",
			ErrInputShape, input)
	}
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ContinuationInputter joins lines ending in a continuation marker with
// the lines that follow. Lines are trimmed and blank lines dropped; each
// group of marker-terminated lines plus the first unmarked line becomes a
// single logical line, concatenated without a separator.
type ContinuationInputter struct {
	// Marker is the line-terminating continuation string. Empty means the
	// conventional backslash.
	Marker string
}

// Lines normalizes input and merges continuation groups.
func (c ContinuationInputter) Lines(input any) ([]string, error) {
	lines, err := LineInputter{}.Lines(input)
	if err != nil {
		return nil, err
	}
	marker := c.Marker
	if marker == "" {
		marker = `\`
	}

	var out []string
	var parts strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rest, ok := strings.CutSuffix(line, marker); ok {
			parts.WriteString(rest)
			continue
		}
		parts.WriteString(line)
		out = append(out, parts.String())
		parts.Reset()
	}
	if parts.Len() > 0 {
		// Trailing marked lines with no closing line still form a group.
		out = append(out, parts.String())
	}
	return out, nil
}
