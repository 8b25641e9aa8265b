package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtorell/texttab"
)

func sampleTable(t *testing.T) *texttab.Table {
	t.Helper()
	tab, err := texttab.Read([]string{"a b", "1 2"}, texttab.GuessFormat(false))
	require.NoError(t, err)
	return tab
}

func TestReadOptions(t *testing.T) {
	t.Parallel()

	opts, err := readOptions(flags{
		format:    "tab",
		delimiter: ",",
		include:   []string{"a"},
		noGuess:   true,
	})
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	_, err = readOptions(flags{format: "parquet"})
	require.Error(t, err)

	_, err = readOptions(flags{quote: "ab"})
	require.Error(t, err)
}

func TestEmitWriteFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, emit(sampleTable(t), &buf, "basic"))
	assert.Equal(t, "a b\n1 2\n", buf.String())
}

func TestEmitJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, emit(sampleTable(t), &buf, "json"))
	assert.JSONEq(t, `{"names":["a","b"],"rows":[[1,2]]}`, buf.String())
}

func TestEmitYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, emit(sampleTable(t), &buf, "yaml"))
	assert.Contains(t, buf.String(), "a:")
	assert.Contains(t, buf.String(), "- 1")
}

func TestEmitUnknownTarget(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := emit(sampleTable(t), &buf, "parquet")
	require.Error(t, err)
	assert.ErrorIs(t, err, texttab.ErrUnknownFormat)
}
