package docreader

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook builds a two-sheet workbook: a prose summary sheet
// and a sector table sheet with one deliberately blank row
func writeTestWorkbook(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Summary"))
	require.NoError(t, f.SetSheetRow("Summary", "A1",
		&[]interface{}{"Executive summary of the annual survey."}))
	require.NoError(t, f.SetSheetRow("Summary", "A2",
		&[]interface{}{"The adoption rate reached 42.5% in 2024."}))

	_, err := f.NewSheet("Sectors")
	require.NoError(t, err)
	sectorRows := [][]interface{}{
		{"Sector", "Adoption"},
		{"Healthcare", "38.2"},
		{}, // blank row, must be dropped from the table
		{"Manufacturing", "35.0"},
	}
	for i, row := range sectorRows {
		require.NoError(t, f.SetSheetRow("Sectors", fmt.Sprintf("A%d", i+1), &row))
	}

	require.NoError(t, f.SaveAs(path))
}

func TestExcelDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	writeTestWorkbook(t, path)

	doc, err := OpenExcel(path, 0)
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, path, doc.Source())
	assert.Equal(t, 2, doc.PageCount())

	text, err := doc.Text(1)
	require.NoError(t, err)
	assert.Contains(t, text, "adoption rate reached 42.5% in 2024")

	text, err = doc.Text(2)
	require.NoError(t, err)
	assert.Contains(t, text, "Healthcare  38.2")

	pages, err := doc.FindPagesWithKeyword("adoption")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, pages)

	pages, err = doc.FindPagesWithKeyword("healthcare")
	require.NoError(t, err)
	assert.Equal(t, []int{2}, pages)

	_, err = doc.Text(3)
	assert.Error(t, err)
}

func TestExcelDocument_SheetAsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	writeTestWorkbook(t, path)

	doc, err := OpenExcel(path, 0)
	require.NoError(t, err)
	defer doc.Close()

	tables, err := doc.Tables(2, 2)
	require.NoError(t, err)
	require.Len(t, tables, 1)

	table := tables[0]
	assert.Equal(t, 2, table.Page)
	require.Len(t, table.Rows, 3, "blank rows are dropped")
	assert.Equal(t, []string{"Sector", "Adoption"}, table.Rows[0])
	assert.Equal(t, []string{"Healthcare", "38.2"}, table.Rows[1])
	assert.Equal(t, []string{"Manufacturing", "35.0"}, table.Rows[2])

	_, err = doc.Tables(3, 2)
	assert.Error(t, err, "inverted range after clamping")
}

func TestOpenExcel_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenExcel("", 0)
	assert.Error(t, err)

	_, err = OpenExcel(filepath.Join(dir, "absent.xlsx"), 0)
	assert.Error(t, err)

	path := filepath.Join(dir, "survey.xlsx")
	writeTestWorkbook(t, path)
	_, err = OpenExcel(path, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file too large")

	garbage := filepath.Join(dir, "garbage.xlsx")
	require.NoError(t, os.WriteFile(garbage, []byte("not a workbook"), 0o644))
	_, err = OpenExcel(garbage, 0)
	assert.Error(t, err)
}

func TestValidator_ValidWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.xlsx")
	writeTestWorkbook(t, path)

	result, err := NewValidator(0).ValidateFile(path)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Equal(t, "excel", result.Format)
	assert.Equal(t, 2, result.Pages)
	assert.Empty(t, result.Message)
}
