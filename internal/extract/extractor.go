package extract

import (
	"log"
	"strings"

	"github.com/a3tai/mcp-report-extractor/internal/docreader"
)

// DefaultContextWindow is the radius, in characters, scanned around a
// match to confirm a rule keyword sits nearby. The window is a bounded
// disambiguation heuristic for pages that discuss several topics; the
// Reconciler is expected to absorb its false positives.
const DefaultContextWindow = 150

// RecordExtractor applies a rule's value patterns against candidate
// pages, producing typed candidate records with provenance
type RecordExtractor struct {
	contextWindow int
}

// NewRecordExtractor creates a record extractor. contextWindow is the
// keyword-proximity radius; zero selects the default.
func NewRecordExtractor(contextWindow int) *RecordExtractor {
	if contextWindow <= 0 {
		contextWindow = DefaultContextWindow
	}
	return &RecordExtractor{
		contextWindow: contextWindow,
	}
}

// Extract runs the rule against the given pages. Each page's text is
// fetched once (the document memoizes it); a page that cannot be read
// is logged and skipped without aborting the remaining pages. The
// result is deterministic for a fixed (document, rule, pages) input.
func (e *RecordExtractor) Extract(doc docreader.Document, rule ExtractionRule, pages []int) []CandidateRecord {
	var records []CandidateRecord
	for _, page := range pages {
		text, err := doc.Text(page)
		if err != nil {
			log.Printf("extract: skipping page %d of %s: %v", page, doc.Source(), err)
			continue
		}
		records = append(records, e.extractPage(text, page, rule)...)
	}
	return records
}

// extractPage tries the rule's patterns in order. The first pattern to
// match wins for the page, even when all of its matches are later
// dropped during coercion: patterns are ordered most specific first,
// and letting a looser pattern re-scan the same page trades precision
// for recall in the wrong direction.
func (e *RecordExtractor) extractPage(text string, page int, rule ExtractionRule) []CandidateRecord {
	for i := range rule.Patterns {
		vp := &rule.Patterns[i]
		matches := vp.Regexp().FindAllStringSubmatchIndex(text, -1)
		if len(matches) == 0 {
			continue
		}

		var records []CandidateRecord
		for _, match := range matches {
			if vp.RequireContext && !e.nearKeyword(text, match[0], rule.Keywords) {
				continue
			}
			if record, ok := buildRecord(text, match, vp, rule, page); ok {
				records = append(records, record)
			}
		}
		return records
	}
	return nil
}

// nearKeyword reports whether any rule keyword occurs within the
// context window around the match position
func (e *RecordExtractor) nearKeyword(text string, pos int, keywords []string) bool {
	start := pos - e.contextWindow
	if start < 0 {
		start = 0
	}
	end := pos + e.contextWindow
	if end > len(text) {
		end = len(text)
	}

	window := strings.ToLower(text[start:end])
	for _, keyword := range keywords {
		if strings.Contains(window, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// buildRecord coerces one regex match into a candidate record. A group
// whose value cannot be coerced to its field's type rejects the whole
// record; partial records would poison reconciliation downstream.
func buildRecord(text string, match []int, vp *ValuePattern, rule ExtractionRule, page int) (CandidateRecord, bool) {
	fields := make(map[string]any, len(vp.Groups))

	for gi, fieldName := range vp.Groups {
		if fieldName == "" {
			continue
		}

		lo, hi := match[2*(gi+1)], match[2*(gi+1)+1]
		if lo < 0 || hi < 0 {
			continue
		}

		field, ok := rule.FieldByName(fieldName)
		if !ok {
			// Pattern references a field outside the rule schema
			return CandidateRecord{}, false
		}

		value, ok := coerceValue(field, text[lo:hi])
		if !ok {
			return CandidateRecord{}, false
		}
		fields[fieldName] = value
	}

	if len(fields) == 0 {
		return CandidateRecord{}, false
	}

	return CandidateRecord{
		Topic:        rule.Topic,
		Fields:       fields,
		SourcePage:   page,
		SourceRuleID: vp.ID,
		Origin:       OriginPattern,
	}, true
}
