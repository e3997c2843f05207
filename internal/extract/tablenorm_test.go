package extract

import (
	"testing"

	"github.com/a3tai/mcp-report-extractor/internal/docreader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectorRule(t *testing.T) ExtractionRule {
	t.Helper()
	rule, ok := RuleByTopic(DefaultLibrary(), "sector_adoption")
	require.True(t, ok)
	return rule
}

func TestTableNormalizer_SectorTable(t *testing.T) {
	table := docreader.RawTable{
		Page: 4,
		Rows: [][]string{
			{"Sector", "Adoption"},
			{"Healthcare", "38.2%"},
			{"Manufacturing", "35.0%"},
			{"Retail", "31.4%"},
		},
	}

	records, ok := NewTableNormalizer().Normalize(sectorRule(t), table)
	require.True(t, ok)
	require.Len(t, records, 3)

	assert.Equal(t, "Healthcare", records[0].Fields["sector"])
	assert.Equal(t, 38.2, records[0].Fields["adoption_rate"])
	assert.Equal(t, OriginTable, records[0].Origin)
	assert.Equal(t, 4, records[0].SourcePage)
}

func TestTableNormalizer_NoLabelColumn(t *testing.T) {
	// A purely numeric table has no identifiable label column: the
	// normalizer must signal "not this topic's table" so the caller
	// tries the next candidate, not conclude the topic is empty.
	table := docreader.RawTable{
		Page: 2,
		Rows: [][]string{
			{"1.2", "3.4"},
			{"5.6", "7.8"},
		},
	}

	records, ok := NewTableNormalizer().Normalize(sectorRule(t), table)
	assert.False(t, ok)
	assert.Nil(t, records)
}

func TestTableNormalizer_UnparseableRowsDropped(t *testing.T) {
	table := docreader.RawTable{
		Page: 4,
		Rows: [][]string{
			{"Sector", "Adoption"},
			{"Healthcare", "38.2"},
			{"Manufacturing", "n/a"},
			{"Retail", "31.4"},
		},
	}

	records, ok := NewTableNormalizer().Normalize(sectorRule(t), table)
	require.True(t, ok)
	require.Len(t, records, 2)
	assert.Equal(t, "Healthcare", records[0].Fields["sector"])
	assert.Equal(t, "Retail", records[1].Fields["sector"])
}

func TestTableNormalizer_MajorityNumericRequired(t *testing.T) {
	// The second column is mostly prose, so it must not be treated as
	// a value column even though one cell parses
	table := docreader.RawTable{
		Page: 1,
		Rows: [][]string{
			{"Healthcare", "expanding"},
			{"Manufacturing", "42"},
			{"Retail", "flat"},
		},
	}

	records, ok := NewTableNormalizer().Normalize(sectorRule(t), table)
	require.True(t, ok)
	assert.Empty(t, records)
}

func TestTableNormalizer_PatternOnlyTopicRejected(t *testing.T) {
	// Topics without a label field are pattern-only; any table is
	// rejected outright
	rule, ok := RuleByTopic(DefaultLibrary(), "adoption_trends")
	require.True(t, ok)

	table := docreader.RawTable{
		Page: 1,
		Rows: [][]string{
			{"2023", "30.0"},
			{"2024", "42.5"},
		},
	}

	records, matched := NewTableNormalizer().Normalize(rule, table)
	assert.False(t, matched)
	assert.Nil(t, records)
}

func TestTableNormalizer_OutOfRangePercentRowDropped(t *testing.T) {
	table := docreader.RawTable{
		Page: 3,
		Rows: [][]string{
			{"Sector", "Adoption"},
			{"Healthcare", "38.2"},
			{"Manufacturing", "250"},
		},
	}

	records, ok := NewTableNormalizer().Normalize(sectorRule(t), table)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "Healthcare", records[0].Fields["sector"])
}
