package extract

import (
	"regexp"
)

// FieldType describes the semantic type of a schema field
type FieldType string

const (
	FieldTypeNumber   FieldType = "number"
	FieldTypePercent  FieldType = "percent"
	FieldTypeCurrency FieldType = "currency"
	FieldTypeLabel    FieldType = "label"
	FieldTypeYear     FieldType = "year"
)

// IsNumeric reports whether values of this type are stored as float64
func (ft FieldType) IsNumeric() bool {
	switch ft {
	case FieldTypeNumber, FieldTypePercent, FieldTypeCurrency:
		return true
	default:
		return false
	}
}

// Field is a single named, typed column in a rule's target schema
type Field struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// ValuePattern is one candidate regex strategy within an extraction rule.
// Patterns are tried in rule order; the first pattern that matches on a
// page wins for that page. Groups maps capture group i+1 to the schema
// field the group fills; an empty name skips the group.
type ValuePattern struct {
	ID             string   `json:"id"`
	Pattern        string   `json:"pattern"`
	Groups         []string `json:"groups"`
	RequireContext bool     `json:"require_context"` // match must sit near a rule keyword

	re *regexp.Regexp
}

// Regexp returns the compiled pattern, compiling it on first use
func (vp *ValuePattern) Regexp() *regexp.Regexp {
	if vp.re == nil {
		vp.re = regexp.MustCompile(vp.Pattern)
	}
	return vp.re
}

// ExtractionRule defines how one topic's facts are located and typed.
// Rules are pure data; all matching behavior lives in RecordExtractor
// and TableNormalizer.
type ExtractionRule struct {
	// Topic doubles as the logical dataset name, e.g. "adoption_trends"
	Topic string `json:"topic"`

	// Keywords select candidate pages via the page index
	Keywords []string `json:"keywords"`

	// Patterns are ordered most specific first
	Patterns []ValuePattern `json:"patterns"`

	// Schema declares the field set every reconciled row must carry
	Schema []Field `json:"schema"`

	// Vocabulary is the domain word list used to spot a table's label
	// column (sector names, region names, ...)
	Vocabulary []string `json:"vocabulary"`

	// RequiredColumns is the subset of schema fields validation enforces
	RequiredColumns []string `json:"required_columns"`
}

// FieldByName returns the schema field with the given name
func (r *ExtractionRule) FieldByName(name string) (Field, bool) {
	for _, f := range r.Schema {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// LabelField returns the first label-typed schema field, if any
func (r *ExtractionRule) LabelField() (Field, bool) {
	for _, f := range r.Schema {
		if f.Type == FieldTypeLabel {
			return f, true
		}
	}
	return Field{}, false
}

// NumericFields returns the numeric schema fields in declaration order
func (r *ExtractionRule) NumericFields() []Field {
	var out []Field
	for _, f := range r.Schema {
		if f.Type.IsNumeric() {
			out = append(out, f)
		}
	}
	return out
}

// SchemaNames returns the schema field names in declaration order
func (r *ExtractionRule) SchemaNames() []string {
	names := make([]string, 0, len(r.Schema))
	for _, f := range r.Schema {
		names = append(names, f.Name)
	}
	return names
}

// RecordOrigin identifies which extraction strategy produced a record
type RecordOrigin string

const (
	OriginPattern RecordOrigin = "pattern"
	OriginTable   RecordOrigin = "table"
)

// CandidateRecord is one typed extraction hit with provenance. Records
// are immutable once created; the Reconciler consumes and discards them.
// Field values are float64 for numeric types, int for years and string
// for labels.
type CandidateRecord struct {
	Topic        string         `json:"topic"`
	Fields       map[string]any `json:"fields"`
	SourcePage   int            `json:"source_page"`
	SourceRuleID string         `json:"source_rule_id"`
	Origin       RecordOrigin   `json:"origin"`
}

// ConsensusLevel summarizes agreement among candidates for one key
type ConsensusLevel string

const (
	ConsensusHigh   ConsensusLevel = "High"
	ConsensusMedium ConsensusLevel = "Medium"
	ConsensusLow    ConsensusLevel = "Low"
)

// Row is one schema-homogeneous dataset row
type Row map[string]any

// RowMeta carries per-row reconciliation provenance, aligned by index
// with Dataset.Rows. Kept outside the row itself so rows carry exactly
// the declared schema.
type RowMeta struct {
	Key         string         `json:"key"`
	Consensus   ConsensusLevel `json:"consensus"`
	Support     int            `json:"support"` // number of candidates merged
	SourcePages []int          `json:"source_pages"`
}

// Dataset is the reconciled, validated output for one topic
type Dataset struct {
	Name     string    `json:"name"`
	Rows     []Row     `json:"rows"`
	Meta     []RowMeta `json:"meta"`
	Citation string    `json:"citation"`
}

// ValidationResult reports the outcome of dataset validation
type ValidationResult struct {
	Valid          bool     `json:"valid"`
	MissingColumns []string `json:"missing_columns"`
	RowCount       int      `json:"row_count"`
}
