// Package docreader provides page-oriented read access to report
// documents. A Document exposes page text, per-page tables and keyword
// lookup; results are memoized per document because the underlying
// render call is the dominant cost of a run.
package docreader

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document is the capability the extraction pipeline consumes. Pages
// are numbered 1..PageCount(). Implementations must be safe to share
// across extraction rules within a run; fakes implement this for tests.
type Document interface {
	// PageCount returns the number of pages in the document
	PageCount() int

	// Text returns the plain text of one page, served from cache after
	// the first request
	Text(page int) (string, error)

	// Tables returns the tables recovered from the inclusive page range
	Tables(first, last int) ([]RawTable, error)

	// FindPagesWithKeyword returns the ascending page numbers whose text
	// contains the keyword (case-insensitive). A keyword that never
	// appears yields an empty slice, not an error.
	FindPagesWithKeyword(keyword string) ([]int, error)

	// Source returns the file reference backing this document
	Source() string

	// Close releases the underlying file handle
	Close() error
}

// RawTable is an untyped table as recovered from a document page
type RawTable struct {
	Page int        `json:"page"`
	Rows [][]string `json:"rows"`
}

// ColumnCount returns the widest row width in the table
func (t RawTable) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Open opens a report document, selecting the backend by extension.
// .pdf files are read via ledongthuc/pdf, .xlsx workbooks via excelize.
func Open(path string, maxFileSize int64) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return OpenPDF(path, maxFileSize)
	case ".xlsx", ".xlsm":
		return OpenExcel(path, maxFileSize)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", path)
	}
}

// findKeywordPages is the shared keyword scan over cached page text
func findKeywordPages(d Document, keyword string) ([]int, error) {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil, fmt.Errorf("keyword cannot be empty")
	}

	var pages []int
	for page := 1; page <= d.PageCount(); page++ {
		text, err := d.Text(page)
		if err != nil {
			// A single unreadable page must not abort the scan
			continue
		}
		if strings.Contains(strings.ToLower(text), needle) {
			pages = append(pages, page)
		}
	}
	return pages, nil
}
