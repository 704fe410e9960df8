package registry

import (
	"testing"

	perr "namematch/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CleansAndDedupes(t *testing.T) {
	idx, err := Build([]string{"  John   Smith ", "", "MARIA LOPEZ", "john smith", "   ", "Anna Bell", "Maria Lopez"})
	require.NoError(t, err)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, 2, idx.Duplicates())
	assert.Equal(t, 2, idx.Blanks())

	want := []Entry{
		{Name: "John Smith", Key: "john smith", Pos: 0},
		{Name: "MARIA LOPEZ", Key: "maria lopez", Pos: 1},
		{Name: "Anna Bell", Key: "anna bell", Pos: 2},
	}
	assert.Equal(t, want, idx.Entries())
}

func TestBuild_EmptyIsValidationError(t *testing.T) {
	for _, in := range [][]string{nil, {}, {"", "  ", "..."}} {
		_, err := Build(in)
		require.Error(t, err)
		assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation), "got %v", err)
	}
}

func TestIndex_Lookup(t *testing.T) {
	idx, err := Build([]string{"John Smith", "Maria Lopez"})
	require.NoError(t, err)

	e, ok := idx.Lookup("  JOHN smith")
	require.True(t, ok)
	assert.Equal(t, "John Smith", e.Name)

	_, ok = idx.Lookup("Jon Smyth")
	assert.False(t, ok)
}

func TestBuildDetails(t *testing.T) {
	header := []string{"Account", " customername ", "City"}
	rows := [][]string{
		{"A-1", "John Smith", "Leeds"},
		{"A-2", "Maria Lopez"},                // short row padded
		{"A-3", "JOHN SMITH", "York"},         // duplicate key, first wins
		{"A-4", "  ", "Nowhere"},              // blank key skipped
		{"A-5", "Anna Bell", "Bath", "extra"}, // long row truncated
		{"A-6"},                               // key cell missing
	}
	tbl, err := BuildDetails("CustomerName", header, rows)
	require.NoError(t, err)

	assert.Equal(t, "customername", tbl.KeyColumn())
	assert.Equal(t, []string{"Account", "City"}, tbl.Columns())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 1, tbl.Duplicates())

	d, ok := tbl.Lookup("john smith")
	require.True(t, ok)
	assert.Equal(t, Detail{Name: "John Smith", Values: []string{"A-1", "Leeds"}}, d)
	assert.Equal(t, map[string]string{"Account": "A-1", "City": "Leeds"}, d.Map(tbl.Columns()))

	d, ok = tbl.Lookup("Maria Lopez")
	require.True(t, ok)
	assert.Equal(t, []string{"A-2", ""}, d.Values)

	d, ok = tbl.Lookup("Anna Bell")
	require.True(t, ok)
	assert.Equal(t, []string{"A-5", "Bath"}, d.Values)
}

func TestBuildDetails_MissingKeyColumn(t *testing.T) {
	_, err := BuildDetails("CustomerName", []string{"Name", "City"}, nil)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))

	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, "CustomerName", e.Field())
}

func TestDetailTable_Nil(t *testing.T) {
	var tbl *DetailTable
	_, ok := tbl.Lookup("John Smith")
	assert.False(t, ok)
	assert.Nil(t, tbl.Columns())
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, "", tbl.KeyColumn())
}

func TestColumnIndex(t *testing.T) {
	h := []string{"PDF Name", " CustomerName", "Score"}
	assert.Equal(t, 1, ColumnIndex(h, "customername"))
	assert.Equal(t, -1, ColumnIndex(h, "Missing"))
}
