package docreader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTables(t *testing.T) {
	text := "Sector adoption varied widely in 2024.\n" +
		"Sector          Adoption\n" +
		"Healthcare      38.2%\n" +
		"Manufacturing   35.0%\n" +
		"Totals exclude respondents who declined to answer."

	tables := detectTables(4, text)
	require.Len(t, tables, 1)

	table := tables[0]
	assert.Equal(t, 4, table.Page)
	assert.Equal(t, 2, table.ColumnCount())
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Healthcare", "38.2%"}, table.Rows[1])
}

func TestDetectTables_WidthChangeStartsNewTable(t *testing.T) {
	text := "a1\tb1\n" +
		"a2\tb2\n" +
		"x1\ty1\tz1\n" +
		"x2\ty2\tz2\n"

	tables := detectTables(1, text)
	require.Len(t, tables, 2)
	assert.Equal(t, 2, tables[0].ColumnCount())
	assert.Equal(t, 3, tables[1].ColumnCount())
}

func TestDetectTables_SingleRowRejected(t *testing.T) {
	text := "only    one    aligned    line\nthen prose again"
	assert.Empty(t, detectTables(1, text))
}

func TestDetectTables_ProseOnly(t *testing.T) {
	text := "A paragraph of ordinary prose. Another sentence follows it.\n" +
		"No alignment anywhere on this page."
	assert.Empty(t, detectTables(1, text))
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"multi space", "Healthcare      38.2%", []string{"Healthcare", "38.2%"}},
		{"tabs", "a\tb\tc", []string{"a", "b", "c"}},
		{"pipes", "a | b | c", []string{"a", "b", "c"}},
		{"empty", "   ", nil},
		{"single word", "Healthcare", []string{"Healthcare"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCells(tt.line))
		})
	}
}
