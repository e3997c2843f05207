package extract

import (
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/a3tai/mcp-report-extractor/internal/docreader"
)

// DefaultMaxCandidatePages bounds how many pages a single rule may
// scan. Recall beyond the cap is deliberately sacrificed so a large
// document cannot force a full-range scan for every keyword of every
// rule.
const DefaultMaxCandidatePages = 12

// PageIndex maps keywords to candidate page numbers for one document,
// caching lookups per keyword. The index is shared by every rule run
// against the document.
type PageIndex struct {
	doc           docreader.Document
	maxCandidates int

	mu    sync.Mutex
	cache map[string][]int
}

// NewPageIndex creates a page index over one document. maxCandidates
// caps a rule's candidate page set; zero selects the default.
func NewPageIndex(doc docreader.Document, maxCandidates int) *PageIndex {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidatePages
	}
	return &PageIndex{
		doc:           doc,
		maxCandidates: maxCandidates,
		cache:         make(map[string][]int),
	}
}

// FindPages returns the ascending, deduplicated pages containing the
// keyword. A keyword that never appears contributes an empty result,
// not an error; lookup failures are logged and treated the same way.
func (idx *PageIndex) FindPages(keyword string) []int {
	key := strings.ToLower(strings.TrimSpace(keyword))
	if key == "" {
		return nil
	}

	idx.mu.Lock()
	if pages, ok := idx.cache[key]; ok {
		idx.mu.Unlock()
		return pages
	}
	idx.mu.Unlock()

	pages, err := idx.doc.FindPagesWithKeyword(key)
	if err != nil {
		log.Printf("page index: keyword %q lookup failed on %s: %v", key, idx.doc.Source(), err)
		pages = nil
	}

	idx.mu.Lock()
	idx.cache[key] = pages
	idx.mu.Unlock()
	return pages
}

// CandidatePages returns the union of FindPages results for every
// keyword of the rule, ascending and deduplicated, capped at the
// configured bound.
func (idx *PageIndex) CandidatePages(rule ExtractionRule) []int {
	seen := make(map[int]bool)
	var pages []int
	for _, keyword := range rule.Keywords {
		for _, page := range idx.FindPages(keyword) {
			if !seen[page] {
				seen[page] = true
				pages = append(pages, page)
			}
		}
	}

	sort.Ints(pages)
	if len(pages) > idx.maxCandidates {
		pages = pages[:idx.maxCandidates]
	}
	return pages
}
