package extract

import (
	"strconv"
	"strings"
)

// Value coercion bounds
const (
	minYear = 1900
	maxYear = 2100

	minPercent = 0.0
	maxPercent = 100.0
)

// parseNumeric parses a raw match as a float, tolerating currency and
// percent decoration ("$1,234.5", "42.5%", "1 234")
func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseYear parses a raw match as a calendar year
func parseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	if y < minYear || y > maxYear {
		return 0, false
	}
	return y, true
}

// coerceValue converts a raw matched string into the typed value for a
// schema field. Returns false when the value cannot be coerced or falls
// outside the type's legal range; callers drop such matches rather than
// clamping them.
func coerceValue(field Field, raw string) (any, bool) {
	switch field.Type {
	case FieldTypeLabel:
		s := strings.TrimSpace(raw)
		if s == "" {
			return nil, false
		}
		return s, true
	case FieldTypeYear:
		return parseYearValue(raw)
	case FieldTypePercent:
		v, ok := parseNumeric(raw)
		if !ok || v < minPercent || v > maxPercent {
			return nil, false
		}
		return v, true
	case FieldTypeNumber, FieldTypeCurrency:
		v, ok := parseNumeric(raw)
		if !ok {
			return nil, false
		}
		return v, true
	default:
		return nil, false
	}
}

func parseYearValue(raw string) (any, bool) {
	y, ok := parseYear(raw)
	if !ok {
		return nil, false
	}
	return y, true
}
