package indexbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulatorAddAndDrainSorted(t *testing.T) {
	acc := NewAccumulator(30)

	tokens, err := acc.Add(0, DocFields{Body: []string{"zebra", "apple", "apple"}})
	assert.NoError(t, err)
	assert.Equal(t, 3, tokens)

	_, err = acc.Add(1, DocFields{Title: []string{"apple"}})
	assert.NoError(t, err)

	lines := acc.DrainSorted()
	assert.Len(t, lines, 2)
	assert.Equal(t, "apple", lines[0].Token)
	assert.Equal(t, "zebra", lines[1].Token)

	assert.Equal(t, 2, lines[0].DocCount)
	assert.Equal(t, 3, lines[0].TotalCount) // 2 occurrences in doc 0 + 1 in doc 1
	assert.Equal(t, []string{"0 b2", "1 t1"}, lines[0].Postings)

	assert.Equal(t, 1, lines[1].DocCount)
	assert.Equal(t, 1, lines[1].TotalCount)
}

func TestAccumulatorDrainSortedEmptiesState(t *testing.T) {
	acc := NewAccumulator(30)
	_, err := acc.Add(0, DocFields{Body: []string{"x"}})
	assert.NoError(t, err)
	assert.Positive(t, acc.SizeBytes())

	lines := acc.DrainSorted()
	assert.Len(t, lines, 1)
	assert.Zero(t, acc.SizeBytes())
	assert.Empty(t, acc.DrainSorted())
}

func TestAccumulatorMultiFieldToken(t *testing.T) {
	acc := NewAccumulator(30)
	_, err := acc.Add(0, DocFields{
		Title:    []string{"x"},
		Body:     []string{"x", "x"},
		Category: []string{"x"},
	})
	assert.NoError(t, err)

	lines := acc.DrainSorted()
	assert.Len(t, lines, 1)
	assert.Equal(t, "x", lines[0].Token)
	assert.Equal(t, 1, lines[0].DocCount)
	assert.Equal(t, 4, lines[0].TotalCount)
	assert.Equal(t, []string{"0 t1b2c1"}, lines[0].Postings)
}

func TestAccumulatorRejectsOverlongToken(t *testing.T) {
	acc := NewAccumulator(4)
	_, err := acc.Add(0, DocFields{Body: []string{"toolong"}})
	assert.Error(t, err)
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestAccumulatorEmptyDocument(t *testing.T) {
	acc := NewAccumulator(30)
	tokens, err := acc.Add(0, DocFields{})
	assert.NoError(t, err)
	assert.Zero(t, tokens)
	assert.Empty(t, acc.DrainSorted())
}
