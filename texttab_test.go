package texttab_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtorell/texttab"
)

// --- Fixtures ---

var basicLines = []string{
	"apples oranges pears",
	"1 2 3",
	"4 5 6",
}

const basicText = "apples oranges pears\n1 2 3\n4 5 6\n"

var cdsLines = []string{
	"Title: Some catalog",
	"==============================================================================",
	"Byte-by-byte Description of file: table.dat",
	"------------------------------------------------------------------------------",
	"   Bytes Format Units   Label     Explanations",
	"------------------------------------------------------------------------------",
	"   1-  3  I3    ---     Index     Star number",
	"   5- 10  F6.2  mag     Bmag      B magnitude",
	"  12- 15  A4    ---     Name      Object name",
	"------------------------------------------------------------------------------",
	"  1  10.25 AB12",
	"  2  11.30 CD34",
}

var daophotLines = []string{
	`#K MERGERAD   = INDEF                   scaleunit  %-23.7g`,
	`#N ID    XCENTER   YCENTER   MAG  \`,
	`#U ##    pixels    pixels    magnitudes  \`,
	`#F %-9d  %-10.3f   %-10.3f   %-12.3f`,
	`14       138.538   256.405   15.461`,
	`18       18.114    280.170   22.329`,
}

func ints(t *testing.T, tab *texttab.Table, name string) []int64 {
	t.Helper()
	col, ok := tab.Column(name)
	require.True(t, ok, "column %q", name)
	vals, ok := col.Ints()
	require.True(t, ok, "column %q not integer typed, got %T", name, col.Data)
	return vals
}

func floats(t *testing.T, tab *texttab.Table, name string) []float64 {
	t.Helper()
	col, ok := tab.Column(name)
	require.True(t, ok, "column %q", name)
	vals, ok := col.Floats()
	require.True(t, ok, "column %q not float typed, got %T", name, col.Data)
	return vals
}

func texts(t *testing.T, tab *texttab.Table, name string) []string {
	t.Helper()
	col, ok := tab.Column(name)
	require.True(t, ok, "column %q", name)
	vals, ok := col.Strings()
	require.True(t, ok, "column %q not text typed, got %T", name, col.Data)
	return vals
}

// --- Basic reads ---

func TestReadBasic(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(basicLines, texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"apples", "oranges", "pears"}, tab.Names())
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, []int64{1, 4}, ints(t, tab, "apples"))
	assert.Equal(t, []int64{2, 5}, ints(t, tab, "oranges"))
	assert.Equal(t, []int64{3, 6}, ints(t, tab, "pears"))
}

func TestReadInputShapes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, os.WriteFile(path, []byte(basicText), 0o644))

	inputs := map[string]any{
		"lines":  basicLines,
		"string": basicText,
		"bytes":  []byte(basicText),
		"reader": strings.NewReader(basicText),
		"path":   path,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			tab, err := texttab.Read(input, texttab.GuessFormat(false))
			require.NoError(t, err)
			assert.Equal(t, []int64{1, 4}, ints(t, tab, "apples"))
		})
	}
}

func TestReadBadInputShape(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read(42, texttab.GuessFormat(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrInputShape)
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read(filepath.Join(t.TempDir(), "nope.txt"), texttab.GuessFormat(false))
	require.Error(t, err)
}

func TestReadCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{
		"# a leading comment",
		"a b",
		"",
		"1 2",
		"  # an indented comment",
		"3 4",
	}, texttab.GuessFormat(false))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ints(t, tab, "a"))
	assert.Equal(t, []int64{2, 4}, ints(t, tab, "b"))
}

// --- Format presets ---

func TestReadTab(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"a\tb\tc", "x\ty\tz"},
		texttab.WithFormat(texttab.Tab), texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, tab.Names())
	assert.Equal(t, []string{"x"}, texts(t, tab, "a"))
	assert.Equal(t, []string{"y"}, texts(t, tab, "b"))
	assert.Equal(t, []string{"z"}, texts(t, tab, "c"))
}

func TestReadTabKeepsInnerSpaces(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"a\tb", "one two\t3"},
		texttab.WithFormat(texttab.Tab), texttab.GuessFormat(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"one two"}, texts(t, tab, "a"))
}

func TestReadNoHeader(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"1 2", "3 4"},
		texttab.WithFormat(texttab.NoHeader), texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"col1", "col2"}, tab.Names())
	assert.Equal(t, []int64{1, 3}, ints(t, tab, "col1"))
}

func TestReadCommentedHeader(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"# a b c", "1 2 3", "4 5 6"},
		texttab.WithFormat(texttab.CommentedHeader), texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, tab.Names())
	assert.Equal(t, []int64{1, 4}, ints(t, tab, "a"))
}

func TestReadRdb(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"name\tmag", "S\tN", "star\t12.5"},
		texttab.WithFormat(texttab.Rdb), texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"star"}, texts(t, tab, "name"))
	assert.Equal(t, []float64{12.5}, floats(t, tab, "mag"))
	assert.Equal(t, 1, tab.Len())
}

func TestReadDaophot(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(daophotLines,
		texttab.WithFormat(texttab.Daophot), texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "XCENTER", "YCENTER", "MAG"}, tab.Names())
	assert.Equal(t, []int64{14, 18}, ints(t, tab, "ID"))
	assert.Equal(t, []float64{138.538, 18.114}, floats(t, tab, "XCENTER"))
	assert.Equal(t, []float64{15.461, 22.329}, floats(t, tab, "MAG"))
}

func TestReadCds(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(cdsLines,
		texttab.WithFormat(texttab.Cds), texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"Index", "Bmag", "Name"}, tab.Names())
	assert.Equal(t, []int64{1, 2}, ints(t, tab, "Index"))
	assert.Equal(t, []float64{10.25, 11.30}, floats(t, tab, "Bmag"))
	assert.Equal(t, []string{"AB12", "CD34"}, texts(t, tab, "Name"))

	col, ok := tab.Column("Bmag")
	require.True(t, ok)
	assert.Equal(t, "mag", col.Units)
	assert.Equal(t, "B magnitude", col.Description)
}

func TestReadCdsIncludeSlicesOnlyKept(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(cdsLines,
		texttab.WithFormat(texttab.Cds),
		texttab.IncludeNames("Name"),
		texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name"}, tab.Names())
	assert.Equal(t, []string{"AB12", "CD34"}, texts(t, tab, "Name"))
}

func TestReadCdsMissingDescription(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read([]string{"just", "some", "lines"},
		texttab.WithFormat(texttab.Cds), texttab.GuessFormat(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrBadLine)
}

func TestReadUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := texttab.ParseFormat("parquet")
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrUnknownFormat)
}

// --- Option surface ---

func TestReadNamesOverride(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(basicLines,
		texttab.Names("x", "y", "z"), texttab.GuessFormat(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, tab.Names())
	assert.Equal(t, []int64{1, 4}, ints(t, tab, "x"))
}

func TestReadIncludeThenExclude(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"A B C", "1 2 3", "4 5 6"},
		texttab.IncludeNames("A", "B"),
		texttab.ExcludeNames("B"),
		texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, tab.Names())
	assert.Equal(t, []int64{1, 4}, ints(t, tab, "A"))
}

func TestReadHeaderAndDataBounds(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{
		"some preamble line",
		"a b",
		"1 2",
		"3 4",
		"trailing junk",
	},
		texttab.HeaderStart(1),
		texttab.DataStart(2),
		texttab.DataEnd(-1),
		texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3}, ints(t, tab, "a"))
	assert.Equal(t, []int64{2, 4}, ints(t, tab, "b"))
}

func TestReadDelimiterAndQuote(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"name,value", "'a b',2"},
		texttab.Delimiter(","),
		texttab.Quote('\''),
		texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []string{"a b"}, texts(t, tab, "name"))
	assert.Equal(t, []int64{2}, ints(t, tab, "value"))
}

func TestReadCustomComment(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"// note", "a b", "1 2"},
		texttab.Comment(`\s*//`), texttab.GuessFormat(false))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ints(t, tab, "a"))
}

func TestReadFillValues(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"a|b|c", "1||3", "4|5|6"},
		texttab.Delimiter("|"),
		texttab.FillValues(map[string]string{"": "-999"}),
		texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []int64{-999, 5}, ints(t, tab, "b"))
	col, ok := tab.Column("b")
	require.True(t, ok)
	assert.Equal(t, []bool{true, false}, col.Mask)
}

func TestReadFillScopedToColumns(t *testing.T) {
	t.Parallel()

	// The fill applies to column a only, so the empty value in b stays
	// and the whole table falls back to text typing.
	tab, err := texttab.Read([]string{"a|b", "|", "1|2"},
		texttab.Delimiter("|"),
		texttab.FillValues(map[string]string{"": "0"}),
		texttab.FillIncludeNames("a"),
		texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1}, ints(t, tab, "a"))
	assert.Equal(t, []string{"", "2"}, texts(t, tab, "b"))
	b, ok := tab.Column("b")
	require.True(t, ok)
	assert.Nil(t, b.Mask)
}

func TestReadConverterFallbackToText(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"v", "1", "2", "x"},
		texttab.GuessFormat(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "x"}, texts(t, tab, "v"))
}

func TestReadConvertersOverride(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"a b", "1 2"},
		texttab.Converters(map[string][]texttab.Converter{
			"a": {texttab.ConvertFloat},
		}),
		texttab.GuessFormat(false))
	require.NoError(t, err)

	assert.Equal(t, []float64{1}, floats(t, tab, "a"))
	assert.Equal(t, []int64{2}, ints(t, tab, "b"))
}

func TestReadConvertersExhausted(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read([]string{"a b", "x 2"},
		texttab.Converters(map[string][]texttab.Converter{
			"a": {texttab.ConvertInt},
		}),
		texttab.GuessFormat(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrConversion)
	assert.ErrorContains(t, err, `"a"`)
}

func TestReadUnknownOption(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read(basicLines, texttab.WriteComment("# "))
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrBadOption)
	assert.ErrorContains(t, err, "write_comment")
}

func TestNewReaderRejectsGuess(t *testing.T) {
	t.Parallel()

	_, err := texttab.NewReader(texttab.GuessFormat(true))
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrBadOption)
	assert.ErrorContains(t, err, "guess")
}

// --- Structural errors ---

func TestReadRowWidthMismatch(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read([]string{"a b", "1 2", "3 4 5"},
		texttab.GuessFormat(false))
	require.Error(t, err)

	var ite *texttab.InconsistentTableError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, 1, ite.Row)
	assert.Equal(t, 2, ite.Expected)
	assert.Equal(t, 3, ite.Got)
	assert.ErrorIs(t, err, texttab.ErrInconsistentTable)
}

func TestReadHeaderWidthMismatch(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read([]string{"a b c", "1 2"},
		texttab.GuessFormat(false))
	require.Error(t, err)

	var ite *texttab.InconsistentTableError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, -1, ite.Row)
	assert.Equal(t, 3, ite.Expected)
	assert.Equal(t, 2, ite.Got)
}

func TestReadUnterminatedQuote(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read([]string{"a,b", `"1,2`},
		texttab.Delimiter(","), texttab.GuessFormat(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrBadLine)
}

// --- Reader reuse ---

func TestReaderReadTwice(t *testing.T) {
	t.Parallel()

	r, err := texttab.NewReader()
	require.NoError(t, err)

	first, err := r.Read(basicLines)
	require.NoError(t, err)

	// A reader holds configuration only, so a second read must not see
	// rows accumulated by the first.
	second, err := r.Read(basicLines)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, []int64{1, 4}, ints(t, second, "apples"))
}
