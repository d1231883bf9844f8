package validation

import (
	"reflect"
	"testing"
)

func TestValidate_DeviceComplete(t *testing.T) {
	rec := Record{
		"marque":           "Dell",
		"modele":           "Latitude 5420",
		"numeroSerie":      "DEL123A21",
		"numeroInventaire": "abn-2024-001",
		"etat":             "Occasion",
	}
	report := Validate(rec, KindPC)
	if report.Status != StatusValid {
		t.Fatalf("expected valid, got %s (errors=%v warnings=%v)", report.Status, report.Errors, report.Warnings)
	}
	if len(report.Errors) != 0 || len(report.Warnings) != 0 {
		t.Fatalf("expected empty lists, got errors=%v warnings=%v", report.Errors, report.Warnings)
	}
}

func TestValidate_DeviceMissingRequired(t *testing.T) {
	rec := Record{
		"numeroInventaire": "abn-2024-001",
		"etat":             "Neuf",
	}
	report := Validate(rec, KindSmartphone)
	if report.Status != StatusError {
		t.Fatalf("expected error status, got %s", report.Status)
	}
	expected := []string{"Marque manquante", "Modèle manquant", "Numéro de série manquant"}
	if !reflect.DeepEqual(report.Errors, expected) {
		t.Fatalf("expected errors %v, got %v", expected, report.Errors)
	}
}

func TestValidate_DeviceWarningsOnly(t *testing.T) {
	rec := Record{
		"marque":      "Lenovo",
		"modele":      "ThinkPad T480",
		"numeroSerie": "LEN042B19",
	}
	report := Validate(rec, KindPC)
	if report.Status != StatusWarning {
		t.Fatalf("expected warning status, got %s", report.Status)
	}
	expected := []string{"Numéro d'inventaire recommandé", "État non spécifié"}
	if !reflect.DeepEqual(report.Warnings, expected) {
		t.Fatalf("expected warnings %v, got %v", expected, report.Warnings)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", report.Errors)
	}
}

func TestValidate_ErrorsDominateWarnings(t *testing.T) {
	rec := Record{
		"marque": "HP",
		"modele": "EliteBook",
	}
	report := Validate(rec, KindPC)
	if report.Status != StatusError {
		t.Fatalf("expected error status when both lists are non-empty, got %s", report.Status)
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected warnings to still be reported alongside errors")
	}
}

func TestValidate_Interlocuteur(t *testing.T) {
	rec := Record{
		"nomStructure":       "Centre Social Les Amandiers",
		"ville":              "Paris",
		"interlocuteur1.nom": "Jean Martin",
	}
	report := Validate(rec, KindInterlocuteur)
	if report.Status != StatusWarning {
		t.Fatalf("expected warning status, got %s", report.Status)
	}
	expected := []string{"Email de l'interlocuteur principal recommandé"}
	if !reflect.DeepEqual(report.Warnings, expected) {
		t.Fatalf("expected warnings %v, got %v", expected, report.Warnings)
	}
}

func TestValidate_InterlocuteurMissingAll(t *testing.T) {
	report := Validate(Record{}, KindInterlocuteur)
	expected := []string{"Nom de structure manquant", "Ville manquante", "Interlocuteur principal manquant"}
	if !reflect.DeepEqual(report.Errors, expected) {
		t.Fatalf("expected errors %v, got %v", expected, report.Errors)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	rec := Record{"marque": "Apple", "numeroSerie": "APP007C20"}
	first := Validate(rec, KindSmartphone)
	for i := 0; i < 10; i++ {
		again := Validate(rec, KindSmartphone)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}
