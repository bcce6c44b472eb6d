package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowercaseFilter(t *testing.T) {
	var (
		in  = []string{"Cat", "DOG", "fish"}
		out = []string{"cat", "dog", "fish"}
	)
	assert.Equal(t, out, lowercaseFilter(in))
}

func TestStopwordFilter(t *testing.T) {
	var (
		in  = []string{"i", "am", "the", "cat"}
		out = []string{"cat"}
	)
	assert.Equal(t, out, stopwordFilter(in))
}

func TestStemmerFilter(t *testing.T) {
	var (
		in  = []string{"cat", "cats", "fish", "fishing", "fished", "airline"}
		out = []string{"cat", "cat", "fish", "fish", "fish", "airlin"}
	)
	assert.Equal(t, out, stemmerFilter(in))
}

func TestCharacterFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "Remove punctuation from ends",
			input:    []string{"!hello!", ".world.", "?test?"},
			expected: []string{"hello", "world", "test"},
		},
		{
			name:     "Skip short tokens",
			input:    []string{"a", "ab", "abc"},
			expected: []string{"ab", "abc"},
		},
		{
			name:     "Empty and invalid tokens",
			input:    []string{"", "!", "@", "a", "#b#"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := characterFilter(tt.input)
			assert.Equal(t, tt.expected, result, "Test case: %s", tt.name)
		})
	}
}

func TestTokenizePipeline(t *testing.T) {
	// "The" is a stopword, "cats" stems to "cat", "a" is dropped as a short
	// fragment before it ever reaches the stopword filter.
	got := Tokenize("The cats, a fishing trip!")
	assert.Equal(t, []string{"cat", "fish", "trip"}, got)
}

func TestTokenizeEmptyText(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("  "))
}
