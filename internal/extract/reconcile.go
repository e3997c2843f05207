package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Coefficient-of-variation thresholds for consensus labeling
const (
	cvHighConsensus   = 0.3
	cvMediumConsensus = 0.6
)

// Reconciler merges candidate records from multiple pages, patterns
// and documents into one canonical dataset per topic
type Reconciler struct{}

// NewReconciler creates a reconciler
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reconcile groups candidates by their natural key and collapses each
// group into one row. Numeric agreement uses the median, not the mean,
// so a single heuristic false positive cannot drag the merged value.
// Rows preserve the first-seen order of distinct keys, and every
// emitted row carries exactly the rule's schema; groups that never
// produced a value for some schema field are dropped rather than
// zero-filled.
func (r *Reconciler) Reconcile(rule ExtractionRule, candidates []CandidateRecord) Dataset {
	type group struct {
		key     string
		records []CandidateRecord
	}

	groupIdx := make(map[string]int)
	var groups []*group
	for _, rec := range candidates {
		key := groupKey(rule, rec)
		if i, ok := groupIdx[key]; ok {
			groups[i].records = append(groups[i].records, rec)
			continue
		}
		groupIdx[key] = len(groups)
		groups = append(groups, &group{key: key, records: []CandidateRecord{rec}})
	}

	ds := Dataset{Name: rule.Topic}
	for _, g := range groups {
		row, meta, ok := r.mergeGroup(rule, g.key, g.records)
		if !ok {
			continue
		}
		ds.Rows = append(ds.Rows, row)
		ds.Meta = append(ds.Meta, meta)
	}
	return ds
}

// groupKey derives a candidate's natural key: the label value when the
// schema has one, else the year, else a single topic-wide key
func groupKey(rule ExtractionRule, rec CandidateRecord) string {
	if f, ok := rule.LabelField(); ok {
		if v, ok := rec.Fields[f.Name].(string); ok {
			return normalizeKey(v)
		}
	}
	for _, f := range rule.Schema {
		if f.Type == FieldTypeYear {
			if v, ok := rec.Fields[f.Name].(int); ok {
				return fmt.Sprintf("year:%d", v)
			}
		}
	}
	return "topic:" + rec.Topic
}

// mergeGroup collapses one key group into a schema-complete row
func (r *Reconciler) mergeGroup(rule ExtractionRule, key string, records []CandidateRecord) (Row, RowMeta, bool) {
	row := make(Row, len(rule.Schema))
	worstCV := 0.0
	hasSpread := false

	for _, field := range rule.Schema {
		switch {
		case field.Type == FieldTypeLabel:
			label, ok := firstLabel(field.Name, records)
			if !ok {
				return nil, RowMeta{}, false
			}
			row[field.Name] = label
		case field.Type == FieldTypeYear:
			years := collectYears(field.Name, records)
			if len(years) == 0 {
				return nil, RowMeta{}, false
			}
			row[field.Name] = int(math.Round(median(years)))
		default:
			values := collectNumbers(field.Name, records)
			if len(values) == 0 {
				return nil, RowMeta{}, false
			}
			row[field.Name] = median(values)
			if len(values) >= 2 {
				hasSpread = true
				if cv := coefficientOfVariation(values); cv > worstCV {
					worstCV = cv
				}
			}
		}
	}

	meta := RowMeta{
		Key:         key,
		Consensus:   ConsensusLow,
		Support:     len(records),
		SourcePages: sourcePages(records),
	}
	if hasSpread {
		meta.Consensus = consensusFromCV(worstCV)
	}
	return row, meta, true
}

// consensusFromCV maps numeric spread to a qualitative consensus label
func consensusFromCV(cv float64) ConsensusLevel {
	switch {
	case cv < cvHighConsensus:
		return ConsensusHigh
	case cv < cvMediumConsensus:
		return ConsensusMedium
	default:
		return ConsensusLow
	}
}

// median returns the middle value of the inputs. The input slice is
// not modified.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// coefficientOfVariation returns stddev/|mean|. A zero mean with any
// spread counts as maximal disagreement.
func coefficientOfVariation(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	stddev := math.Sqrt(variance)

	if mean == 0 {
		if stddev == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return stddev / math.Abs(mean)
}

// normalizeKey folds case and surrounding space so "Healthcare " and
// "healthcare" reconcile into one group
func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func firstLabel(name string, records []CandidateRecord) (string, bool) {
	for _, rec := range records {
		if v, ok := rec.Fields[name].(string); ok {
			return v, true
		}
	}
	return "", false
}

func collectYears(name string, records []CandidateRecord) []float64 {
	var out []float64
	for _, rec := range records {
		if v, ok := rec.Fields[name].(int); ok {
			out = append(out, float64(v))
		}
	}
	return out
}

func collectNumbers(name string, records []CandidateRecord) []float64 {
	var out []float64
	for _, rec := range records {
		if v, ok := rec.Fields[name].(float64); ok {
			out = append(out, v)
		}
	}
	return out
}

func sourcePages(records []CandidateRecord) []int {
	seen := make(map[int]bool)
	var pages []int
	for _, rec := range records {
		if !seen[rec.SourcePage] {
			seen[rec.SourcePage] = true
			pages = append(pages, rec.SourcePage)
		}
	}
	sort.Ints(pages)
	return pages
}
