package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageIndex_FindPagesCached(t *testing.T) {
	doc := newFakeDocument(
		"adoption is discussed here",
		"nothing relevant",
		"more on adoption",
	)
	idx := NewPageIndex(doc, 0)

	first := idx.FindPages("adoption")
	second := idx.FindPages("adoption")

	assert.Equal(t, []int{1, 3}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, doc.findCalls, "second lookup must come from cache")
}

func TestPageIndex_MissingKeywordIsEmpty(t *testing.T) {
	doc := newFakeDocument("some page text")
	idx := NewPageIndex(doc, 0)

	assert.Empty(t, idx.FindPages("blockchain"))
	assert.Empty(t, idx.FindPages(""))
}

func TestPageIndex_CandidatePagesUnion(t *testing.T) {
	doc := newFakeDocument(
		"adoption rate overview",   // page 1
		"sector breakdown",         // page 2
		"adoption by sector",       // page 3
		"unrelated appendix",       // page 4
		"industry adoption detail", // page 5
	)
	idx := NewPageIndex(doc, 0)

	rule := ExtractionRule{
		Topic:    "sector_adoption",
		Keywords: []string{"sector", "adoption"},
	}

	assert.Equal(t, []int{1, 2, 3, 5}, idx.CandidatePages(rule))
}

func TestPageIndex_CandidatePagesCapped(t *testing.T) {
	pages := make([]string, 40)
	for i := range pages {
		pages[i] = fmt.Sprintf("adoption notes, page %d", i+1)
	}
	doc := newFakeDocument(pages...)
	idx := NewPageIndex(doc, 5)

	rule := ExtractionRule{
		Topic:    "adoption_trends",
		Keywords: []string{"adoption"},
	}

	got := idx.CandidatePages(rule)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got, "cap keeps the lowest pages")
}
