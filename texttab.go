package texttab

// defaultGuess is the process-wide default for format auto-detection,
// consulted by Read when no guess option is supplied. Set it once at
// startup via SetGuess; it is the only package-level state.
var defaultGuess = true

// SetGuess sets the process default for whether Read auto-detects the
// table format.
func SetGuess(guess bool) {
	defaultGuess = guess
}

// Read parses tabular text into a [Table].
//
// Input may be a file path, a string of newline-separated lines, a
// []string, a []byte, or an io.Reader (see [Inputter]).
//
// With guessing enabled (the default), Read tries the supplied
// configuration first and then a ranked list of well-known format presets,
// returning the first plausible parse. With guessing disabled, the first
// structural or conversion error propagates unmodified.
func Read(input any, opts ...Option) (*Table, error) {
	if err := validateOptions(opts, readOptionNames, "Read"); err != nil {
		return nil, err
	}
	guess := defaultGuess
	if v, ok := optionValue(opts, "guess"); ok {
		guess = v.(bool)
	}
	if guess {
		return guessRead(input, opts)
	}
	reader, err := newReaderFrom(opts)
	if err != nil {
		return nil, err
	}
	return reader.Read(input)
}
