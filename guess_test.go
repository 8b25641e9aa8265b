package texttab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtorell/texttab"
)

func TestGuessBasic(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(basicLines)
	require.NoError(t, err)
	assert.Equal(t, []string{"apples", "oranges", "pears"}, tab.Names())
	assert.Equal(t, []int64{1, 4}, ints(t, tab, "apples"))
}

func TestGuessTab(t *testing.T) {
	t.Parallel()

	// With a single data row the rdb candidate has nothing left after its
	// type line and fails, so the tab candidate wins.
	tab, err := texttab.Read([]string{"a\tb", "1\t2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.Names())
	assert.Equal(t, []int64{1}, ints(t, tab, "a"))
}

func TestGuessRanksRdbBeforeTab(t *testing.T) {
	t.Parallel()

	// A tab table with two or more data rows also parses as rdb, whose
	// second line is taken as the type line. Rdb ranks first, so the
	// first data row is consumed by the type-line slot.
	tab, err := texttab.Read([]string{"a\tb", "1\t2", "3\t4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.Names())
	assert.Equal(t, 1, tab.Len())
	assert.Equal(t, []int64{3}, ints(t, tab, "a"))
	assert.Equal(t, []int64{4}, ints(t, tab, "b"))
}

func TestGuessCsv(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"name,value", `"a,x",2`, "b,3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "value"}, tab.Names())
	assert.Equal(t, []string{"a,x", "b"}, texts(t, tab, "name"))
	assert.Equal(t, []int64{2, 3}, ints(t, tab, "value"))
}

func TestGuessPipe(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"a|b", "1|2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.Names())
	assert.Equal(t, []int64{1}, ints(t, tab, "a"))
}

func TestGuessCommentedHeader(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"# a b", "1 2", "3 4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tab.Names())
	assert.Equal(t, []int64{1, 3}, ints(t, tab, "a"))
}

func TestGuessRdb(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read([]string{"name\tmag", "S\tN", "star\t12.5"})
	require.NoError(t, err)
	assert.Equal(t, []string{"star"}, texts(t, tab, "name"))
	assert.Equal(t, 1, tab.Len())
}

func TestGuessCds(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(cdsLines)
	require.NoError(t, err)
	assert.Equal(t, []string{"Index", "Bmag", "Name"}, tab.Names())
	assert.Equal(t, []int64{1, 2}, ints(t, tab, "Index"))
}

func TestGuessDaophot(t *testing.T) {
	t.Parallel()

	tab, err := texttab.Read(daophotLines)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "XCENTER", "YCENTER", "MAG"}, tab.Names())
}

func TestGuessNumericHeaderFallsToNoHeader(t *testing.T) {
	t.Parallel()

	// A header row of numbers is not a plausible header, so the guess
	// moves on until the headerless candidate accepts the input.
	tab, err := texttab.Read([]string{"1 2", "3 4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"col1", "col2"}, tab.Names())
	assert.Equal(t, []int64{1, 3}, ints(t, tab, "col1"))
}

func TestGuessRespectsPinnedDelimiter(t *testing.T) {
	t.Parallel()

	// The comma candidates disagree with the pinned delimiter and are
	// skipped, so the final fallback parses the whole line as one column.
	tab, err := texttab.Read([]string{"a,b", "1,2"}, texttab.Delimiter("|"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a,b"}, tab.Names())
}

func TestGuessConversionAborts(t *testing.T) {
	t.Parallel()

	// A column that cannot convert fails under every delimiter, so the
	// guess stops instead of burning through the candidate list.
	_, err := texttab.Read([]string{"a b", "x 1"},
		texttab.Converters(map[string][]texttab.Converter{
			"a": {texttab.ConvertInt},
		}))
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrConversion)
}

func TestGuessUnable(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read([]string{"a b", "1 2 3", "4"})
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrInconsistentTable)
	assert.ErrorContains(t, err, "unable to guess")
}

func TestGuessOffPropagatesStructure(t *testing.T) {
	t.Parallel()

	_, err := texttab.Read([]string{"a b", "1 2 3", "4"},
		texttab.GuessFormat(false))
	require.Error(t, err)

	var ite *texttab.InconsistentTableError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, -1, ite.Row)
}

func TestSetGuessDefault(t *testing.T) {
	texttab.SetGuess(false)
	t.Cleanup(func() { texttab.SetGuess(true) })

	// With guessing off by default, the numeric header is taken at face
	// value and the names come back as-is.
	_, err := texttab.Read([]string{"a b", "1 2 3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrInconsistentTable)
}
