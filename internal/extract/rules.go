package extract

// DefaultLibrary returns the built-in extraction rules for technology
// adoption and economic impact reports. Rules are pure data: adding a
// topic or a pattern never touches pipeline control flow. Within a
// rule, patterns are ordered most specific first because the first
// pattern to match on a page wins for that page.
func DefaultLibrary() []ExtractionRule {
	return []ExtractionRule{
		{
			Topic:    "adoption_trends",
			Keywords: []string{"adoption rate", "ai adoption", "adoption"},
			Patterns: []ValuePattern{
				{
					ID:      "adoption_rate_then_year",
					Pattern: `(?i)adoption rate (?:reached|at|of|hit) (\d+(?:\.\d+)?)%\s+in\s+(\d{4})`,
					Groups:  []string{"overall_adoption", "year"},
				},
				{
					ID:      "year_then_adoption_rate",
					Pattern: `(?i)in (\d{4}),?\s+(?:overall\s+)?(?:ai\s+)?adoption (?:reached|rose to|stood at|was|hit) (\d+(?:\.\d+)?)%`,
					Groups:  []string{"year", "overall_adoption"},
				},
				{
					ID:             "year_percent_pair",
					Pattern:        `(?i)(\d{4})\s*[:\-]\s*(\d+(?:\.\d+)?)%`,
					Groups:         []string{"year", "overall_adoption"},
					RequireContext: true,
				},
			},
			Schema: []Field{
				{Name: "year", Type: FieldTypeYear},
				{Name: "overall_adoption", Type: FieldTypePercent},
			},
			RequiredColumns: []string{"year", "overall_adoption"},
		},
		{
			Topic:    "sector_adoption",
			Keywords: []string{"sector adoption", "by sector", "industry adoption", "adoption"},
			Patterns: []ValuePattern{
				{
					ID:      "sector_then_rate",
					Pattern: `(?i)(healthcare|manufacturing|financial services|finance|retail|education|technology|transportation|agriculture|energy|construction|government|media)\s+(?:sector\s+)?(?:adoption\s+)?(?:reached|at|stands at|stood at|reports?|hit)\s+(\d+(?:\.\d+)?)%`,
					Groups:  []string{"sector", "adoption_rate"},
				},
				{
					ID:      "rate_then_sector",
					Pattern: `(?i)(\d+(?:\.\d+)?)%\s+(?:adoption\s+)?(?:in|across)\s+(?:the\s+)?(healthcare|manufacturing|financial services|finance|retail|education|technology|transportation|agriculture|energy|construction|government|media)`,
					Groups:  []string{"adoption_rate", "sector"},
				},
			},
			Schema: []Field{
				{Name: "sector", Type: FieldTypeLabel},
				{Name: "adoption_rate", Type: FieldTypePercent},
			},
			Vocabulary: []string{
				"healthcare", "manufacturing", "financial", "finance", "retail",
				"education", "technology", "transportation", "agriculture",
				"energy", "construction", "government", "media",
			},
			RequiredColumns: []string{"sector", "adoption_rate"},
		},
		{
			Topic:    "gdp_impact",
			Keywords: []string{"gdp", "economic impact", "economic contribution"},
			Patterns: []ValuePattern{
				{
					ID:      "region_then_billions",
					Pattern: `(?i)(global|north america|europe|asia pacific|asia-pacific|china|united states|india|latin america|middle east|africa)[^.\n]{0,60}?\$(\d[\d,]*(?:\.\d+)?)\s*billion`,
					Groups:  []string{"region", "impact_billions"},
				},
				{
					ID:             "billions_near_gdp",
					Pattern:        `(?i)\$(\d[\d,]*(?:\.\d+)?)\s*billion\s+(?:to|in|for)\s+(global|north america|europe|asia pacific|asia-pacific|china|united states|india|latin america|middle east|africa)`,
					Groups:         []string{"impact_billions", "region"},
					RequireContext: true,
				},
			},
			Schema: []Field{
				{Name: "region", Type: FieldTypeLabel},
				{Name: "impact_billions", Type: FieldTypeCurrency},
			},
			Vocabulary: []string{
				"global", "north america", "europe", "asia", "china",
				"united states", "india", "latin america", "middle east", "africa",
			},
			RequiredColumns: []string{"region", "impact_billions"},
		},
		{
			Topic:    "automation_exposure",
			Keywords: []string{"automation", "exposure", "displacement", "at risk"},
			Patterns: []ValuePattern{
				{
					ID:      "share_of_occupation",
					Pattern: `(?i)(\d+(?:\.\d+)?)%\s+of\s+([a-z][a-z &-]+?)\s+(?:jobs|tasks|roles|workers)\s+(?:are|is|face|remain)\s+(?:exposed|automatable|at risk)`,
					Groups:  []string{"exposure_share", "occupation"},
				},
				{
					ID:      "occupation_then_share",
					Pattern: `(?i)([a-z][a-z &-]+?)\s+(?:jobs|roles|occupations)\s+face\s+(\d+(?:\.\d+)?)%\s+(?:automation\s+)?exposure`,
					Groups:  []string{"occupation", "exposure_share"},
				},
			},
			Schema: []Field{
				{Name: "occupation", Type: FieldTypeLabel},
				{Name: "exposure_share", Type: FieldTypePercent},
			},
			Vocabulary: []string{
				"office support", "customer service", "food service", "production",
				"transportation", "administrative", "legal", "clerical",
				"management", "sales", "maintenance", "data entry",
			},
			RequiredColumns: []string{"occupation", "exposure_share"},
		},
		{
			Topic:    "regional_adoption",
			Keywords: []string{"regional adoption", "by region", "across regions", "adoption"},
			Patterns: []ValuePattern{
				{
					ID:      "region_then_rate",
					Pattern: `(?i)(north america|europe|asia pacific|asia-pacific|china|united states|india|latin america|middle east|africa)\s+(?:adoption\s+)?(?:reached|at|stands at|stood at|leads with|hit)\s+(\d+(?:\.\d+)?)%`,
					Groups:  []string{"region", "adoption_rate"},
				},
				{
					ID:      "rate_then_region",
					Pattern: `(?i)(\d+(?:\.\d+)?)%\s+(?:adoption\s+)?in\s+(north america|europe|asia pacific|asia-pacific|china|united states|india|latin america|middle east|africa)`,
					Groups:  []string{"adoption_rate", "region"},
				},
			},
			Schema: []Field{
				{Name: "region", Type: FieldTypeLabel},
				{Name: "adoption_rate", Type: FieldTypePercent},
			},
			Vocabulary: []string{
				"north america", "europe", "asia", "china", "united states",
				"india", "latin america", "middle east", "africa",
			},
			RequiredColumns: []string{"region", "adoption_rate"},
		},
		{
			Topic:    "ai_investment",
			Keywords: []string{"investment", "funding", "capital"},
			Patterns: []ValuePattern{
				{
					ID:      "investment_then_year",
					Pattern: `(?i)investment (?:reached|totaled|hit|grew to|was) \$(\d[\d,]*(?:\.\d+)?)\s*billion in (\d{4})`,
					Groups:  []string{"investment_billions", "year"},
				},
				{
					ID:      "year_then_investment",
					Pattern: `(?i)in (\d{4}),?\s+(?:global\s+)?(?:ai\s+)?investment (?:reached|totaled|was|hit) \$(\d[\d,]*(?:\.\d+)?)\s*billion`,
					Groups:  []string{"year", "investment_billions"},
				},
			},
			Schema: []Field{
				{Name: "year", Type: FieldTypeYear},
				{Name: "investment_billions", Type: FieldTypeCurrency},
			},
			RequiredColumns: []string{"year", "investment_billions"},
		},
	}
}

// RuleByTopic returns the rule with the given topic from a library
func RuleByTopic(library []ExtractionRule, topic string) (ExtractionRule, bool) {
	for _, rule := range library {
		if rule.Topic == topic {
			return rule, true
		}
	}
	return ExtractionRule{}, false
}
