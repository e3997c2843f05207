package docreader

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelDocument reads report pages from an Excel workbook via excelize.
// Sheet n is exposed as page n; each sheet's cell grid is the page's
// single table, and the page text is the row-joined sheet content so
// the keyword index and pattern extractor work unchanged.
type ExcelDocument struct {
	path   string
	file   *excelize.File
	sheets []string
	cache  *pageCache
}

// OpenExcel opens and validates an Excel report document
func OpenExcel(path string, maxFileSize int64) (*ExcelDocument, error) {
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
	if maxFileSize > 0 && fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), maxFileSize)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("workbook has no sheets: %s", path)
	}

	return &ExcelDocument{
		path:   path,
		file:   f,
		sheets: sheets,
		cache:  newPageCache(),
	}, nil
}

// PageCount returns the number of sheets
func (d *ExcelDocument) PageCount() int {
	return len(d.sheets)
}

// Text returns the row-joined text of one sheet, cached after first read
func (d *ExcelDocument) Text(page int) (string, error) {
	if page < 1 || page > len(d.sheets) {
		return "", fmt.Errorf("page %d out of range [1, %d]", page, len(d.sheets))
	}

	return d.cache.getText(page, func() (string, error) {
		rows, err := d.file.GetRows(d.sheets[page-1])
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %q: %w", d.sheets[page-1], err)
		}

		var builder strings.Builder
		for _, row := range rows {
			builder.WriteString(strings.Join(row, "  "))
			builder.WriteString("\n")
		}
		return builder.String(), nil
	})
}

// Tables returns each sheet in the range as one table. Sheets that are
// empty or unreadable are skipped.
func (d *ExcelDocument) Tables(first, last int) ([]RawTable, error) {
	if first < 1 {
		first = 1
	}
	if last > len(d.sheets) {
		last = len(d.sheets)
	}
	if first > last {
		return nil, fmt.Errorf("invalid page range [%d, %d]", first, last)
	}

	var tables []RawTable
	for page := first; page <= last; page++ {
		pageTables, err := d.cache.getTables(page, func() ([]RawTable, error) {
			rows, err := d.file.GetRows(d.sheets[page-1])
			if err != nil {
				return nil, err
			}

			cleaned := make([][]string, 0, len(rows))
			for _, row := range rows {
				if rowHasContent(row) {
					cleaned = append(cleaned, row)
				}
			}
			if len(cleaned) < minTableRows {
				return nil, nil
			}
			return []RawTable{{Page: page, Rows: cleaned}}, nil
		})
		if err != nil {
			continue
		}
		tables = append(tables, pageTables...)
	}
	return tables, nil
}

// FindPagesWithKeyword scans cached sheet text for the keyword
func (d *ExcelDocument) FindPagesWithKeyword(keyword string) ([]int, error) {
	return findKeywordPages(d, keyword)
}

// Source returns the backing file path
func (d *ExcelDocument) Source() string {
	return d.path
}

// Close releases the underlying workbook
func (d *ExcelDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
