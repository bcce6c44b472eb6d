package indexbuild

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePartitionFile(t *testing.T, dir, name string, lines []FinalLine) string {
	t.Helper()
	var data []byte
	for _, l := range lines {
		data = append(data, l.Serialize()...)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestBuildSecondaryReadsFirstTokenOfEachPartition(t *testing.T) {
	dir := t.TempDir()
	p0 := writePartitionFile(t, dir, "index_0.txt", []FinalLine{
		{Token: "alpha", IDF: 0, DocCount: 1, TotalCount: 1, Postings: []string{"0 b1"}},
		{Token: "bravo", IDF: 0, DocCount: 1, TotalCount: 1, Postings: []string{"0 b1"}},
	})
	p1 := writePartitionFile(t, dir, "index_1.txt", []FinalLine{
		{Token: "charlie", IDF: 0, DocCount: 1, TotalCount: 1, Postings: []string{"0 b1"}},
	})

	result, err := BuildSecondary([]string{p0, p1}, dir, 1_000_000)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, SecondaryEntry{FirstToken: "alpha", PartitionIndex: 0}, result.Entries[0])
	assert.Equal(t, SecondaryEntry{FirstToken: "charlie", PartitionIndex: 1}, result.Entries[1])
	assert.Equal(t, 1, result.FileCount)

	data, err := os.ReadFile(filepath.Join(dir, "secondary_index_0.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha=0\ncharlie=1\n", string(data))
}

func TestBuildSecondarySplitsOnCap(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, tok := range []string{"alpha", "bravo", "charlie"} {
		paths = append(paths, writePartitionFile(t, dir, "index_"+string(rune('0'+i))+".txt", []FinalLine{
			{Token: tok, IDF: 0, DocCount: 1, TotalCount: 1, Postings: []string{"0 b1"}},
		}))
	}

	result, err := BuildSecondary(paths, dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, result.FileCount)
}

func TestBuildSecondarySkipsEmptyPartition(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "index_0.txt")
	require.NoError(t, os.WriteFile(empty, []byte(""), 0o644))
	nonEmpty := writePartitionFile(t, dir, "index_1.txt", []FinalLine{
		{Token: "only", IDF: 0, DocCount: 1, TotalCount: 1, Postings: []string{"0 b1"}},
	})

	result, err := BuildSecondary([]string{empty, nonEmpty}, dir, 1_000_000)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 1, result.Entries[0].PartitionIndex)
}
