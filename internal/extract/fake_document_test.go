package extract

import (
	"fmt"
	"strings"

	"github.com/a3tai/mcp-report-extractor/internal/docreader"
)

// fakeDocument implements docreader.Document for pipeline tests
type fakeDocument struct {
	source    string
	pages     []string
	tables    map[int][]docreader.RawTable
	textErrs  map[int]error
	findCalls int
	textCalls map[int]int
}

func newFakeDocument(pages ...string) *fakeDocument {
	return &fakeDocument{
		source:    "fake-report.pdf",
		pages:     pages,
		tables:    make(map[int][]docreader.RawTable),
		textErrs:  make(map[int]error),
		textCalls: make(map[int]int),
	}
}

func (d *fakeDocument) PageCount() int {
	return len(d.pages)
}

func (d *fakeDocument) Text(page int) (string, error) {
	d.textCalls[page]++
	if page < 1 || page > len(d.pages) {
		return "", fmt.Errorf("page %d out of range", page)
	}
	if err := d.textErrs[page]; err != nil {
		return "", err
	}
	return d.pages[page-1], nil
}

func (d *fakeDocument) Tables(first, last int) ([]docreader.RawTable, error) {
	var out []docreader.RawTable
	for page := first; page <= last; page++ {
		out = append(out, d.tables[page]...)
	}
	return out, nil
}

func (d *fakeDocument) FindPagesWithKeyword(keyword string) ([]int, error) {
	d.findCalls++
	needle := strings.ToLower(keyword)
	var pages []int
	for i, text := range d.pages {
		if d.textErrs[i+1] != nil {
			continue
		}
		if strings.Contains(strings.ToLower(text), needle) {
			pages = append(pages, i+1)
		}
	}
	return pages, nil
}

func (d *fakeDocument) Source() string {
	return d.source
}

func (d *fakeDocument) Close() error {
	return nil
}
