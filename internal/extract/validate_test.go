package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetValidator(t *testing.T) {
	validator := NewDatasetValidator()

	tests := []struct {
		name        string
		dataset     Dataset
		required    []string
		wantValid   bool
		wantMissing []string
	}{
		{
			name: "valid dataset",
			dataset: Dataset{
				Name: "sector_adoption",
				Rows: []Row{{"sector": "Healthcare", "adoption_rate": 38.2}},
			},
			required:  []string{"sector", "adoption_rate"},
			wantValid: true,
		},
		{
			name:        "zero rows",
			dataset:     Dataset{Name: "sector_adoption"},
			required:    []string{"sector", "adoption_rate"},
			wantValid:   false,
			wantMissing: []string{"sector", "adoption_rate"},
		},
		{
			name: "missing required column",
			dataset: Dataset{
				Name: "sector_adoption",
				Rows: []Row{{"sector": "Healthcare"}},
			},
			required:    []string{"sector", "adoption_rate"},
			wantValid:   false,
			wantMissing: []string{"adoption_rate"},
		},
		{
			name: "no required columns",
			dataset: Dataset{
				Name: "anything",
				Rows: []Row{{"x": 1.0}},
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Validate(&tt.dataset, tt.required)
			assert.Equal(t, tt.wantValid, result.Valid)
			assert.Equal(t, tt.wantMissing, result.MissingColumns)
			assert.Equal(t, len(tt.dataset.Rows), result.RowCount)
		})
	}
}

func TestDatasetValidator_DoesNotMutate(t *testing.T) {
	ds := Dataset{
		Name: "sector_adoption",
		Rows: []Row{{"sector": "Healthcare"}},
	}

	NewDatasetValidator().Validate(&ds, []string{"sector", "adoption_rate"})

	assert.Len(t, ds.Rows, 1)
	assert.Len(t, ds.Rows[0], 1)
	assert.NotContains(t, ds.Rows[0], "adoption_rate")
}
