package docreader

import (
	"regexp"
	"strings"
)

// Table recovery constants
const (
	minTableColumns = 2
	minTableRows    = 2
)

var cellSeparator = regexp.MustCompile(`\t+|\s{2,}|\s*\|\s*`)

// detectTables recovers tabular structures from plain page text. Lines
// that split into the same number of cells on tab runs, multi-space
// runs or pipe separators are grouped into tables; a group needs at
// least two rows of at least two columns to count. This is a layout
// heuristic over extracted text, not a geometric analysis, and the
// TableNormalizer downstream is expected to reject its false positives.
func detectTables(page int, text string) []RawTable {
	var tables []RawTable
	var current [][]string
	currentWidth := 0

	flush := func() {
		if len(current) >= minTableRows {
			tables = append(tables, RawTable{Page: page, Rows: current})
		}
		current = nil
		currentWidth = 0
	}

	for _, line := range strings.Split(text, "\n") {
		cells := splitCells(line)
		if len(cells) < minTableColumns {
			flush()
			continue
		}

		// A width change starts a new table
		if currentWidth != 0 && len(cells) != currentWidth {
			flush()
		}
		currentWidth = len(cells)
		current = append(current, cells)
	}
	flush()

	return tables
}

// splitCells splits one text line into trimmed cells
func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	parts := cellSeparator.Split(line, -1)
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}
