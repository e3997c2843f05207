package loader

import (
	"fmt"

	"github.com/a3tai/mcp-report-extractor/internal/extract"
)

// FallbackMarker appears in the citation of every reference dataset so
// consumers can always tell fallback data from extracted data
const FallbackMarker = "reference data (fallback, not extracted from source)"

// ReferenceDatasets returns the fixed reference datasets served when a
// FallbackReference loader extracts nothing. Values are published
// industry aggregates, kept deliberately coarse; every citation
// carries the fallback marker.
func ReferenceDatasets(source SourceInfo) map[string]*extract.Dataset {
	citation := FallbackMarker
	if source.Citation != "" {
		citation = fmt.Sprintf("%s — %s", source.Citation, FallbackMarker)
	}

	return map[string]*extract.Dataset{
		"adoption_trends": {
			Name: "adoption_trends",
			Rows: []extract.Row{
				{"year": 2022, "overall_adoption": 33.0},
				{"year": 2023, "overall_adoption": 42.0},
				{"year": 2024, "overall_adoption": 55.0},
			},
			Meta: []extract.RowMeta{
				{Key: "year:2022", Consensus: extract.ConsensusLow, Support: 1},
				{Key: "year:2023", Consensus: extract.ConsensusLow, Support: 1},
				{Key: "year:2024", Consensus: extract.ConsensusLow, Support: 1},
			},
			Citation: citation,
		},
		"sector_adoption": {
			Name: "sector_adoption",
			Rows: []extract.Row{
				{"sector": "Technology", "adoption_rate": 68.0},
				{"sector": "Financial Services", "adoption_rate": 54.0},
				{"sector": "Healthcare", "adoption_rate": 38.0},
				{"sector": "Manufacturing", "adoption_rate": 35.0},
				{"sector": "Retail", "adoption_rate": 31.0},
			},
			Meta: []extract.RowMeta{
				{Key: "technology", Consensus: extract.ConsensusLow, Support: 1},
				{Key: "financial services", Consensus: extract.ConsensusLow, Support: 1},
				{Key: "healthcare", Consensus: extract.ConsensusLow, Support: 1},
				{Key: "manufacturing", Consensus: extract.ConsensusLow, Support: 1},
				{Key: "retail", Consensus: extract.ConsensusLow, Support: 1},
			},
			Citation: citation,
		},
	}
}
