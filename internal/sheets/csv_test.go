package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actonians/regsync/pkg/errors"
	"github.com/actonians/regsync/pkg/records"
)

func TestCSVStoreRoundTrip(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	ctx := context.Background()

	header := []string{"First name", "Surname", "Post Code"}
	rows := [][]string{
		{"john", "smith", "W3 7ES"},
		{"jane", "doe", "SW1A 1AA"},
	}

	require.NoError(t, store.Write(ctx, "responses", header, rows))

	gotHeader, gotRows, err := store.Read(ctx, "responses")
	require.NoError(t, err)
	assert.Equal(t, header, gotHeader)
	require.Len(t, gotRows, 2)
	assert.Equal(t, records.Raw{"First name": "john", "Surname": "smith", "Post Code": "W3 7ES"}, gotRows[0])
	assert.Equal(t, "doe", gotRows[1]["Surname"])
}

func TestCSVStoreMissingSheet(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	_, _, err := store.Read(context.Background(), "nope")
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestCSVStoreOverwrite(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "outstanding", []string{"a"}, [][]string{{"1"}, {"2"}}))
	require.NoError(t, store.Write(ctx, "outstanding", []string{"a"}, [][]string{{"3"}}))

	_, rows, err := store.Read(ctx, "outstanding")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "3", rows[0]["a"])
}

func TestToRawPadsShortRows(t *testing.T) {
	header := []string{"a", "b", "c"}
	rows := toRaw(header, [][]string{{"1"}, {"1", "2", "3", "4"}})

	assert.Equal(t, records.Raw{"a": "1", "b": "", "c": ""}, rows[0])
	assert.Equal(t, records.Raw{"a": "1", "b": "2", "c": "3"}, rows[1])
}
