package docreader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/xuri/excelize/v2"
)

// Validator handles report file validation operations
type Validator struct {
	maxFileSize int64
}

// FileValidation is the result of validating one report file
type FileValidation struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Format  string `json:"format,omitempty"`
	Pages   int    `json:"pages,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewValidator creates a new report file validator with the specified
// constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs comprehensive validation on a report file. A
// validation failure is reported in the result, not as an error.
func (v *Validator) ValidateFile(path string) (*FileValidation, error) {
	result := &FileValidation{
		Path:  path,
		Valid: false,
	}

	if err := v.validateBasic(path); err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // validation outcome, not a processing error
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err := v.validatePDF(path)
		if err != nil {
			result.Message = err.Error()
			return result, nil //nolint:nilerr
		}
		result.Format = "pdf"
		result.Pages = pages
	case ".xlsx", ".xlsm":
		pages, err := v.validateExcel(path)
		if err != nil {
			result.Message = err.Error()
			return result, nil //nolint:nilerr
		}
		result.Format = "excel"
		result.Pages = pages
	default:
		result.Message = fmt.Sprintf("unsupported report format: %s", path)
		return result, nil
	}

	result.Valid = true
	return result, nil
}

// validateBasic performs file-level checks shared by all formats
func (v *Validator) validateBasic(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", path)
	}
	if v.maxFileSize > 0 && fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}
	return nil
}

// validatePDF confirms the file is structurally a readable PDF. The
// text backend and pdfcpu must agree on the page count; a mismatch
// usually means a damaged page tree that would corrupt extraction.
func (v *Validator) validatePDF(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("invalid PDF file: %w", err)
	}
	defer f.Close()
	textPages := reader.NumPage()

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot reopen file: %w", err)
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF structure: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("failed to resolve page count: %w", err)
	}

	if ctx.PageCount != textPages {
		return 0, fmt.Errorf("page count mismatch: structure reports %d, text backend reports %d",
			ctx.PageCount, textPages)
	}
	return textPages, nil
}

// validateExcel confirms the workbook opens and has at least one sheet
func (v *Validator) validateExcel(path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("workbook has no sheets: %s", path)
	}
	return len(sheets), nil
}
