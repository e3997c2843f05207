package extract

import (
	"strings"

	"github.com/a3tai/mcp-report-extractor/internal/docreader"
)

// TableNormalizer infers column roles in a raw table and converts it
// into candidate records for a rule's schema
type TableNormalizer struct{}

// NewTableNormalizer creates a table normalizer
func NewTableNormalizer() *TableNormalizer {
	return &TableNormalizer{}
}

// Normalize converts one raw table into candidate records. The second
// return value is false when no label column can be identified, which
// means "not this topic's table": the caller must move on to the next
// candidate table rather than conclude the topic has no data. Rows
// that fail to parse are dropped, never zero-filled.
func (n *TableNormalizer) Normalize(rule ExtractionRule, table docreader.RawTable) ([]CandidateRecord, bool) {
	labelField, ok := rule.LabelField()
	if !ok {
		// Topics without a label field are pattern-only
		return nil, false
	}
	if len(table.Rows) < minNormalizeRows || table.ColumnCount() < 2 {
		return nil, false
	}

	dataStart := headerOffset(table)
	labelCol, ok := findLabelColumn(rule, table, dataStart)
	if !ok {
		return nil, false
	}

	valueCols := findValueColumns(table, dataStart, labelCol)
	pairs := pairValueFields(rule, valueCols)

	var records []CandidateRecord
	for ri := dataStart; ri < len(table.Rows); ri++ {
		label, ok := coerceValue(labelField, cellAt(table, ri, labelCol))
		if !ok {
			continue
		}

		for _, pair := range pairs {
			value, ok := coerceValue(pair.field, cellAt(table, ri, pair.col))
			if !ok {
				continue
			}
			records = append(records, CandidateRecord{
				Topic: rule.Topic,
				Fields: map[string]any{
					labelField.Name: label,
					pair.field.Name: value,
				},
				SourcePage:   table.Page,
				SourceRuleID: "table",
				Origin:       OriginTable,
			})
		}
	}
	return records, true
}

const minNormalizeRows = 2

// columnPair binds a table column to the numeric schema field it fills
type columnPair struct {
	col   int
	field Field
}

// headerOffset returns 1 when the first row looks like a header row
// (no cell parses as a number), otherwise 0
func headerOffset(table docreader.RawTable) int {
	for _, cell := range table.Rows[0] {
		if _, ok := parseNumeric(cell); ok {
			return 0
		}
	}
	return 1
}

// findLabelColumn picks the column whose sampled values most often
// contain the rule's domain vocabulary. At least one hit is required;
// a table with no vocabulary hits anywhere is not this topic's table.
func findLabelColumn(rule ExtractionRule, table docreader.RawTable, dataStart int) (int, bool) {
	bestCol, bestHits := -1, 0

	for col := 0; col < table.ColumnCount(); col++ {
		hits := 0
		for ri := dataStart; ri < len(table.Rows); ri++ {
			cell := strings.ToLower(cellAt(table, ri, col))
			if cell == "" {
				continue
			}
			for _, word := range rule.Vocabulary {
				if strings.Contains(cell, strings.ToLower(word)) {
					hits++
					break
				}
			}
		}
		if hits > bestHits {
			bestCol, bestHits = col, hits
		}
	}

	if bestHits == 0 {
		return -1, false
	}
	return bestCol, true
}

// findValueColumns returns the columns where a majority (>50%) of
// non-empty cells parse as numeric, in column order
func findValueColumns(table docreader.RawTable, dataStart, labelCol int) []int {
	var cols []int
	for col := 0; col < table.ColumnCount(); col++ {
		if col == labelCol {
			continue
		}

		nonEmpty, numeric := 0, 0
		for ri := dataStart; ri < len(table.Rows); ri++ {
			cell := cellAt(table, ri, col)
			if strings.TrimSpace(cell) == "" {
				continue
			}
			nonEmpty++
			if _, ok := parseNumeric(cell); ok {
				numeric++
			}
		}
		if nonEmpty > 0 && numeric*2 > nonEmpty {
			cols = append(cols, col)
		}
	}
	return cols
}

// pairValueFields assigns value columns to the rule's numeric schema
// fields in declaration order. Surplus value columns are ignored; with
// a single numeric field every value column feeds that field and the
// Reconciler merges the duplicates.
func pairValueFields(rule ExtractionRule, valueCols []int) []columnPair {
	numericFields := rule.NumericFields()
	if len(numericFields) == 0 {
		return nil
	}

	var pairs []columnPair
	if len(numericFields) == 1 {
		for _, col := range valueCols {
			pairs = append(pairs, columnPair{col: col, field: numericFields[0]})
		}
		return pairs
	}

	for i, col := range valueCols {
		if i >= len(numericFields) {
			break
		}
		pairs = append(pairs, columnPair{col: col, field: numericFields[i]})
	}
	return pairs
}

func cellAt(table docreader.RawTable, row, col int) string {
	if row < 0 || row >= len(table.Rows) {
		return ""
	}
	cells := table.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}
