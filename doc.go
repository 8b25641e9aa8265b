// Package texttab reads and writes tabular text in delimited and
// fixed-format conventions.
//
// A read turns raw lines of text into a columnar [Table]: named columns of
// uniformly typed values. A write turns a [Table] back into lines. The
// central entry points are [Read] and [Write], which accept named [Option]
// values built by constructor functions such as [Delimiter] and
// [IncludeNames].
//
// # Pipeline
//
// A read is a chain of four swappable stages:
//
//   - [Inputter] — normalizes a path, text block, line slice, or reader
//     into lines
//   - [Header] — locates or derives the column names and applies the
//     include/exclude filters
//   - [Data] — locates the data lines and drives the [Splitter] over them
//   - [Outputter] — converts each column's raw strings to typed values and
//     assembles the table
//
// A [Format] is a fixed bundle of stage configuration representing one
// known convention: [Basic], [NoHeader], [CommentedHeader], [Tab], [Rdb],
// [Cds], and [Daophot]. Writes additionally support [FixedWidth].
//
// # Guessing
//
// By default, Read auto-detects the format: it tries the supplied
// configuration, then a ranked list of presets, accepting the first
// attempt that parses without structural error and yields plausible
// column names. Disable per call with [GuessFormat] or process-wide with
// [SetGuess]. With guessing disabled, the first error propagates
// unmodified.
//
//	table, err := texttab.Read("data.txt")
//	table, err = texttab.Read(lines, texttab.WithFormat(texttab.Tab), texttab.GuessFormat(false))
//
// # Typing
//
// Each column converts with the first [Converter] in its list that
// succeeds for every value; the conventional list tries integers, floats,
// and finally leaves the column as text. The decision is per column, so a
// column is always uniformly typed. Override per column with [Converters].
//
// # Missing values
//
// [FillValues] maps bad literals to replacements; the substituted rows are
// recorded in each column's Mask, scoped by [FillIncludeNames] and
// [FillExcludeNames].
//
// # Writing
//
//	err := texttab.Write(table, os.Stdout, texttab.WithFormat(texttab.FixedWidth))
//
// Per-column output formatting uses [CellFormats] with fmt verb strings or
// formatting functions. The output sink is a file path or an io.Writer.
// [Table] also implements yaml.Marshaler, preserving column order.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInconsistentTable] — header/data column counts disagree, or a
//     row's field count differs from the first row's (see
//     [InconsistentTableError] for the details carried)
//   - [ErrConversion] — no converter succeeded for a column
//   - [ErrBadOption] — unrecognized or malformed option
//   - [ErrInputShape] — input is not a path, text, line slice, or reader
//   - [ErrBadLine] — unterminated quote or unparsable header line
//   - [ErrUnknownFormat] — unrecognized format name
//
// Stages never parse past a structural problem; all retry logic lives in
// the guesser, and it only swallows structural errors, never conversion
// failures.
//
// # Concurrency
//
// Readers and writers hold configuration only; per-call state lives inside
// each call. Build one Reader per concurrent read rather than sharing one.
package texttab
