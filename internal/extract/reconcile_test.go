package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectorCandidate(sector string, rate float64, page int) CandidateRecord {
	return CandidateRecord{
		Topic:        "sector_adoption",
		Fields:       map[string]any{"sector": sector, "adoption_rate": rate},
		SourcePage:   page,
		SourceRuleID: "test",
		Origin:       OriginPattern,
	}
}

func TestReconciler_MedianSuppressesOutlier(t *testing.T) {
	rule := sectorRule(t)
	candidates := []CandidateRecord{
		sectorCandidate("Healthcare", 10, 1),
		sectorCandidate("Healthcare", 10.2, 2),
		sectorCandidate("Healthcare", 9.8, 3),
		sectorCandidate("Healthcare", 1000, 4),
	}

	ds := NewReconciler().Reconcile(rule, candidates)
	require.Len(t, ds.Rows, 1)

	// Median of [9.8, 10, 10.2, 1000] is 10.1; the mean would be
	// ~257.5 and the outlier would dominate
	got := ds.Rows[0]["adoption_rate"].(float64)
	assert.InDelta(t, 10.1, got, 0.001)

	require.Len(t, ds.Meta, 1)
	assert.Equal(t, 4, ds.Meta[0].Support)
	assert.Equal(t, []int{1, 2, 3, 4}, ds.Meta[0].SourcePages)
}

func TestReconciler_ConsensusLevels(t *testing.T) {
	rule := sectorRule(t)

	tests := []struct {
		name   string
		values []float64
		want   ConsensusLevel
	}{
		{"tight agreement", []float64{40, 41, 39.5}, ConsensusHigh},
		{"wide disagreement", []float64{10, 90}, ConsensusLow},
		{"single candidate", []float64{40}, ConsensusLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var candidates []CandidateRecord
			for i, v := range tt.values {
				candidates = append(candidates, sectorCandidate("Retail", v, i+1))
			}

			ds := NewReconciler().Reconcile(rule, candidates)
			require.Len(t, ds.Meta, 1)
			assert.Equal(t, tt.want, ds.Meta[0].Consensus)
		})
	}
}

func TestReconciler_FirstSeenKeyOrder(t *testing.T) {
	rule := sectorRule(t)
	candidates := []CandidateRecord{
		sectorCandidate("Retail", 31, 1),
		sectorCandidate("Healthcare", 38, 1),
		sectorCandidate("Retail", 31.5, 2),
		sectorCandidate("Manufacturing", 35, 3),
	}

	ds := NewReconciler().Reconcile(rule, candidates)
	require.Len(t, ds.Rows, 3)
	assert.Equal(t, "Retail", ds.Rows[0]["sector"])
	assert.Equal(t, "Healthcare", ds.Rows[1]["sector"])
	assert.Equal(t, "Manufacturing", ds.Rows[2]["sector"])
}

func TestReconciler_LabelCaseFolding(t *testing.T) {
	rule := sectorRule(t)
	candidates := []CandidateRecord{
		sectorCandidate("Healthcare", 38, 1),
		sectorCandidate("healthcare ", 38.4, 5),
	}

	ds := NewReconciler().Reconcile(rule, candidates)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, 2, ds.Meta[0].Support)
}

func TestReconciler_SchemaHomogeneity(t *testing.T) {
	rule := sectorRule(t)
	candidates := []CandidateRecord{
		sectorCandidate("Healthcare", 38, 1),
		// Incomplete record: label only, no numeric value anywhere in
		// its group. The group must be dropped, not zero-filled.
		{
			Topic:      "sector_adoption",
			Fields:     map[string]any{"sector": "Energy"},
			SourcePage: 2,
			Origin:     OriginPattern,
		},
	}

	ds := NewReconciler().Reconcile(rule, candidates)
	require.Len(t, ds.Rows, 1)
	for _, row := range ds.Rows {
		assert.Len(t, row, len(rule.Schema))
		for _, field := range rule.Schema {
			assert.Contains(t, row, field.Name)
		}
	}
}

func TestReconciler_YearKeyedTopic(t *testing.T) {
	rule, ok := RuleByTopic(DefaultLibrary(), "adoption_trends")
	require.True(t, ok)

	candidates := []CandidateRecord{
		{
			Topic:      "adoption_trends",
			Fields:     map[string]any{"year": 2024, "overall_adoption": 42.5},
			SourcePage: 2,
			Origin:     OriginPattern,
		},
		{
			Topic:      "adoption_trends",
			Fields:     map[string]any{"year": 2023, "overall_adoption": 30.0},
			SourcePage: 3,
			Origin:     OriginPattern,
		},
		{
			Topic:      "adoption_trends",
			Fields:     map[string]any{"year": 2024, "overall_adoption": 42.7},
			SourcePage: 5,
			Origin:     OriginTable,
		},
	}

	ds := NewReconciler().Reconcile(rule, candidates)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, 2024, ds.Rows[0]["year"])
	assert.InDelta(t, 42.6, ds.Rows[0]["overall_adoption"].(float64), 0.001)
	assert.Equal(t, 2023, ds.Rows[1]["year"])
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 10.0, median([]float64{10}))
	assert.Equal(t, 10.1, median([]float64{10, 10.2}))
	assert.Equal(t, 10.0, median([]float64{1000, 10, 9.8}))
}
