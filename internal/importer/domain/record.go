package importer

import (
	"sort"
	"strings"

	"banque-numerique/internal/validation"
)

// Sentinel accepted by every filter dimension to mean "no filter".
const FilterAll = "Tous"

// RawRecord is one already-parsed row handed over by an external
// parser: a kind discriminator plus a free-form field map. Parsing
// CSV/Excel/JSON into this shape is the collaborator's job.
type RawRecord struct {
	Type   validation.Kind   `json:"type"`
	Fields validation.Record `json:"fields"`
}

// ClassifiedRecord is a raw record with its validation outcome
// attached, as shown in the import preview.
type ClassifiedRecord struct {
	Type     validation.Kind   `json:"type"`
	Fields   validation.Record `json:"fields"`
	Status   validation.Status `json:"status"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
}

// Classify runs every row through the shared validation rules.
func Classify(rows []RawRecord) []ClassifiedRecord {
	classified := make([]ClassifiedRecord, 0, len(rows))
	for _, row := range rows {
		report := validation.Validate(row.Fields, row.Type)
		classified = append(classified, ClassifiedRecord{
			Type:     row.Type,
			Fields:   row.Fields,
			Status:   report.Status,
			Errors:   report.Errors,
			Warnings: report.Warnings,
		})
	}
	return classified
}

// Filter narrows a classified preview. Dimensions combine with AND;
// the search term matches any field with OR semantics.
type Filter struct {
	Type       string `json:"type"`
	Status     string `json:"status"`
	SearchTerm string `json:"searchTerm"`
}

// Matches reports whether one record passes every dimension.
func (f Filter) Matches(rec ClassifiedRecord) bool {
	if f.Type != "" && f.Type != FilterAll && string(rec.Type) != f.Type {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && string(rec.Status) != f.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(string(rec.Type)), term) {
		return true
	}
	// Deterministic field order keeps matching independent of map
	// iteration.
	keys := make([]string, 0, len(rec.Fields))
	for key := range rec.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(strings.ToLower(rec.Fields[key]), term) {
			return true
		}
	}
	return false
}

// Apply returns a new filtered view without mutating the source. It is
// idempotent: filtering an already-filtered result with the same
// filter yields the same result.
func Apply(rows []ClassifiedRecord, f Filter) []ClassifiedRecord {
	filtered := make([]ClassifiedRecord, 0, len(rows))
	for _, rec := range rows {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
