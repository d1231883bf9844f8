package importer

import (
	"reflect"
	"testing"

	"banque-numerique/internal/validation"
)

func sampleRows() []RawRecord {
	return []RawRecord{
		{Type: validation.KindPC, Fields: validation.Record{
			"marque": "Dell", "modele": "Latitude", "numeroSerie": "DEL001A21",
			"numeroInventaire": "abn-2024-001", "etat": "Occasion",
		}},
		{Type: validation.KindSmartphone, Fields: validation.Record{
			"marque": "Samsung", "modele": "Galaxy A52", "numeroSerie": "SAM002B21",
		}},
		{Type: validation.KindPC, Fields: validation.Record{
			"modele": "EliteBook",
		}},
	}
}

func TestClassify_Statuses(t *testing.T) {
	classified := Classify(sampleRows())
	if len(classified) != 3 {
		t.Fatalf("expected 3 records, got %d", len(classified))
	}
	expected := []validation.Status{validation.StatusValid, validation.StatusWarning, validation.StatusError}
	for i, status := range expected {
		if classified[i].Status != status {
			t.Fatalf("record %d: expected %s, got %s (errors=%v)", i, status, classified[i].Status, classified[i].Errors)
		}
	}
}

func TestClassify_MatchesLiveValidation(t *testing.T) {
	rows := sampleRows()
	classified := Classify(rows)
	for i, row := range rows {
		report := validation.Validate(row.Fields, row.Type)
		if classified[i].Status != report.Status {
			t.Fatalf("record %d: preview says %s, live validation says %s", i, classified[i].Status, report.Status)
		}
		if !reflect.DeepEqual(classified[i].Errors, report.Errors) {
			t.Fatalf("record %d: error lists diverge: %v vs %v", i, classified[i].Errors, report.Errors)
		}
	}
}

func TestFilter_AllSentinels(t *testing.T) {
	classified := Classify(sampleRows())
	filtered := Apply(classified, Filter{Type: FilterAll, Status: FilterAll})
	if len(filtered) != len(classified) {
		t.Fatalf("sentinel filter dropped records: %d vs %d", len(filtered), len(classified))
	}
}

func TestFilter_ByStatus(t *testing.T) {
	classified := Classify(sampleRows())
	errorsOnly := Apply(classified, Filter{Status: string(validation.StatusError)})
	if len(errorsOnly) != 1 {
		t.Fatalf("expected 1 error record, got %d", len(errorsOnly))
	}
}

func TestFilter_DimensionsCombineWithAnd(t *testing.T) {
	classified := Classify(sampleRows())
	matched := Apply(classified, Filter{
		Type:   string(validation.KindPC),
		Status: string(validation.StatusValid),
	})
	if len(matched) != 1 || matched[0].Fields["marque"] != "Dell" {
		t.Fatalf("expected only the valid PC, got %+v", matched)
	}
}

func TestFilter_SearchTermMatchesAnyField(t *testing.T) {
	classified := Classify(sampleRows())
	matched := Apply(classified, Filter{SearchTerm: "galaxy"})
	if len(matched) != 1 || matched[0].Type != validation.KindSmartphone {
		t.Fatalf("expected the Samsung row, got %+v", matched)
	}
}

func TestApply_IdempotentAndNonMutating(t *testing.T) {
	classified := Classify(sampleRows())
	filter := Filter{Type: string(validation.KindPC)}
	once := Apply(classified, filter)
	twice := Apply(once, filter)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filter is not idempotent: %+v vs %+v", once, twice)
	}
	if len(classified) != 3 {
		t.Fatal("source slice was mutated")
	}
}
