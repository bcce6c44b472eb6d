package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPopulatesTitleBodyAndLinkFields(t *testing.T) {
	doc := WikiDoc{
		Title:    "Wikipedia: Animal Farm",
		URL:      "https://en.wikipedia.org/wiki/Animal_Farm",
		Abstract: "Animal Farm is a satirical novella by George Orwell.",
	}

	cd := Classify(7, doc)

	assert.Equal(t, 7, cd.DocID)
	assert.Equal(t, doc.Title, cd.Title)
	assert.NotEmpty(t, cd.Fields.Title)
	assert.NotEmpty(t, cd.Fields.Body)
	assert.Equal(t, []string{"anim", "farm"}, cd.Fields.Link)
	assert.Empty(t, cd.Fields.Infobox)
	assert.Empty(t, cd.Fields.Category)
	assert.Empty(t, cd.Fields.Reference)
}

func TestClassifyAllAssignsSequentialDocIDs(t *testing.T) {
	docs := []WikiDoc{
		{Title: "A", URL: "https://en.wikipedia.org/wiki/A", Abstract: "first article"},
		{Title: "B", URL: "https://en.wikipedia.org/wiki/B", Abstract: "second article"},
	}

	classified := ClassifyAll(docs)

	assert.Len(t, classified, 2)
	assert.Equal(t, 0, classified[0].DocID)
	assert.Equal(t, 1, classified[1].DocID)
}

func TestLinkSlugHandlesUnderscoresAndMalformedURLs(t *testing.T) {
	assert.Equal(t, "", linkSlug("https://example.com/wiki/%zz"))
	assert.Equal(t, "Animal Farm", linkSlug("https://en.wikipedia.org/wiki/Animal_Farm"))
}
