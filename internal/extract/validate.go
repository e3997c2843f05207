package extract

// DatasetValidator enforces required-column and non-empty invariants
// on reconciled datasets
type DatasetValidator struct{}

// NewDatasetValidator creates a dataset validator
func NewDatasetValidator() *DatasetValidator {
	return &DatasetValidator{}
}

// Validate checks that the dataset has at least one row and that every
// required column is present in at least one row's field set. The
// dataset is never mutated; a missing column is reported, not repaired.
func (v *DatasetValidator) Validate(ds *Dataset, requiredColumns []string) ValidationResult {
	result := ValidationResult{
		RowCount: len(ds.Rows),
	}

	if len(ds.Rows) == 0 {
		result.MissingColumns = append([]string(nil), requiredColumns...)
		return result
	}

	for _, column := range requiredColumns {
		found := false
		for _, row := range ds.Rows {
			if _, ok := row[column]; ok {
				found = true
				break
			}
		}
		if !found {
			result.MissingColumns = append(result.MissingColumns, column)
		}
	}

	result.Valid = len(result.MissingColumns) == 0
	return result
}
