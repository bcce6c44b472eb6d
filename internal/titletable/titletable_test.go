package titletable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSplitsOnCapAndLookupResolves(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10) // tiny cap forces frequent flushes

	titles := []string{"Animal Farm", "Nineteen Eighty-Four", "Homage to Catalonia"}
	for i, title := range titles {
		require.NoError(t, w.Add(Entry{DocID: i, Title: title}))
	}
	fileCount, err := w.Close()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fileCount, 1)

	for i, title := range titles {
		got, ok, err := Lookup(dir, i)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, title, got)
	}
}

func TestLookupMissingDocIDReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, DefaultFileCap)
	require.NoError(t, w.Add(Entry{DocID: 0, Title: "Only Doc"}))
	_, err := w.Close()
	require.NoError(t, err)

	_, ok, err := Lookup(dir, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupEmptyDirReturnsFalse(t *testing.T) {
	_, ok, err := Lookup(t.TempDir(), 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
