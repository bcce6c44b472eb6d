package lookup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devancy/wikidex/internal/indexbuild"
)

func writeIndex(t *testing.T, dir string, partitions map[int][]indexbuild.FinalLine, secondary map[int]indexbuild.SecondaryEntry) {
	t.Helper()
	for k, lines := range partitions {
		var data []byte
		for _, l := range lines {
			data = append(data, l.Serialize()...)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index_"+string(rune('0'+k))+".txt"), data, 0o644))
	}
	for k, entry := range secondary {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "secondary_index_"+string(rune('0'+k))+".txt"), []byte(entry.Serialize()), 0o644))
	}
}

func TestLookupFindsTokenInCorrectPartition(t *testing.T) {
	dir := t.TempDir()
	writeIndex(t, dir,
		map[int][]indexbuild.FinalLine{
			0: {{Token: "alpha", IDF: 0.1, DocCount: 1, TotalCount: 1, Postings: []string{"0 b1"}}},
			1: {{Token: "gamma", IDF: 0.2, DocCount: 2, TotalCount: 2, Postings: []string{"0 b1", "1 b1"}}},
		},
		map[int]indexbuild.SecondaryEntry{
			0: {FirstToken: "alpha", PartitionIndex: 0},
			1: {FirstToken: "gamma", PartitionIndex: 1},
		},
	)

	idx, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.PartitionCount())

	fl, err := idx.Lookup("gamma")
	require.NoError(t, err)
	assert.Equal(t, 2, fl.DocCount)
	assert.Equal(t, []string{"0 b1", "1 b1"}, fl.Postings)
}

func TestLookupUnknownTokenReturnsErrNotFound(t *testing.T) {
	dir := t.TempDir()
	writeIndex(t, dir,
		map[int][]indexbuild.FinalLine{
			0: {{Token: "alpha", IDF: 0, DocCount: 1, TotalCount: 1, Postings: []string{"0 b1"}}},
		},
		map[int]indexbuild.SecondaryEntry{0: {FirstToken: "alpha", PartitionIndex: 0}},
	)

	idx, err := Open(dir)
	require.NoError(t, err)

	_, err = idx.Lookup("zzz-does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenEmptyDirProducesEmptyIndex(t *testing.T) {
	idx, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, idx.PartitionCount())

	_, err = idx.Lookup("anything")
	assert.ErrorIs(t, err, ErrNotFound)
}
