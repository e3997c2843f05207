package docreader

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFDocument reads report pages from a PDF file via ledongthuc/pdf.
// Page text and recovered tables are memoized per page; the document is
// immutable once opened.
type PDFDocument struct {
	path      string
	file      *os.File
	reader    *pdf.Reader
	pageCount int
	cache     *pageCache
}

// OpenPDF opens and validates a PDF report document
func OpenPDF(path string, maxFileSize int64) (*PDFDocument, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if maxFileSize > 0 && fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxFileSize)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	return &PDFDocument{
		path:      path,
		file:      f,
		reader:    reader,
		pageCount: reader.NumPage(),
		cache:     newPageCache(),
	}, nil
}

// PageCount returns the number of pages
func (d *PDFDocument) PageCount() int {
	return d.pageCount
}

// Text returns the plain text of one page, cached after first read
func (d *PDFDocument) Text(page int) (string, error) {
	if page < 1 || page > d.pageCount {
		return "", fmt.Errorf("page %d out of range [1, %d]", page, d.pageCount)
	}

	return d.cache.getText(page, func() (string, error) {
		p := d.reader.Page(page)
		if p.V.IsNull() {
			return "", fmt.Errorf("page %d has no content", page)
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", page, err)
		}
		return content, nil
	})
}

// Tables recovers tables from the inclusive page range. A single
// unreadable page is skipped rather than aborting the range.
func (d *PDFDocument) Tables(first, last int) ([]RawTable, error) {
	if first < 1 {
		first = 1
	}
	if last > d.pageCount {
		last = d.pageCount
	}
	if first > last {
		return nil, fmt.Errorf("invalid page range [%d, %d]", first, last)
	}

	var tables []RawTable
	for page := first; page <= last; page++ {
		pageTables, err := d.cache.getTables(page, func() ([]RawTable, error) {
			text, err := d.Text(page)
			if err != nil {
				return nil, err
			}
			return detectTables(page, text), nil
		})
		if err != nil {
			continue
		}
		tables = append(tables, pageTables...)
	}
	return tables, nil
}

// FindPagesWithKeyword scans cached page text for the keyword
func (d *PDFDocument) FindPagesWithKeyword(keyword string) ([]int, error) {
	return findKeywordPages(d, keyword)
}

// Source returns the backing file path
func (d *PDFDocument) Source() string {
	return d.path
}

// CacheStats returns the page cache counters
func (d *PDFDocument) CacheStats() CacheStats {
	return d.cache.Stats()
}

// Close releases the underlying file handle
func (d *PDFDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
