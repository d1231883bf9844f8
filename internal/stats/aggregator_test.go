package stats

import (
	"math"
	"testing"

	inventory "banque-numerique/internal/inventory/domain"
	partners "banque-numerique/internal/partners/domain"
)

func sampleDevices() []inventory.Device {
	return []inventory.Device{
		{Type: inventory.DeviceTypePC, Marque: "Dell", Annee: 2021, Etat: inventory.EtatOccasion, InterlocuteurID: 1},
		{Type: inventory.DeviceTypePC, Marque: "Lenovo", Annee: 2019, Etat: inventory.EtatRepare},
		{Type: inventory.DeviceTypeSmartphone, Marque: "Samsung", Annee: 2021, Etat: inventory.EtatOccasion, InterlocuteurID: 1},
	}
}

func TestCompute_Totals(t *testing.T) {
	summary := Compute(sampleDevices(), []partners.Interlocuteur{{ID: 1}, {ID: 2}})

	if summary.TotalDevices != 3 {
		t.Fatalf("expected 3 devices, got %d", summary.TotalDevices)
	}
	if summary.TotalPCs != 2 || summary.TotalSmartphones != 1 {
		t.Fatalf("expected 2 PCs and 1 smartphone, got %d/%d", summary.TotalPCs, summary.TotalSmartphones)
	}
	if summary.TotalInterlocuteurs != 2 {
		t.Fatalf("expected 2 interlocuteurs, got %d", summary.TotalInterlocuteurs)
	}
	if summary.DevicesByState["Occasion"] != 2 {
		t.Fatalf("expected 2 Occasion, got %d", summary.DevicesByState["Occasion"])
	}
	if summary.DevicesByYear[2021] != 2 {
		t.Fatalf("expected 2 devices from 2021, got %d", summary.DevicesByYear[2021])
	}
	if summary.DevicesWithInterlocuteurs != 2 || summary.DevicesWithoutInterlocuteurs != 1 {
		t.Fatalf("expected 2 assigned and 1 unassigned, got %d/%d",
			summary.DevicesWithInterlocuteurs, summary.DevicesWithoutInterlocuteurs)
	}
}

func TestCompute_OnlyObservedKeys(t *testing.T) {
	summary := Compute(sampleDevices(), nil)
	if _, ok := summary.DevicesByState["Neuf"]; ok {
		t.Fatal("states with zero devices must not appear")
	}
}

func TestPercentage_ZeroTotal(t *testing.T) {
	if got := Percentage(5, 0); got != 0 {
		t.Fatalf("expected 0 for zero total, got %v", got)
	}
	if got := Percentage(0, 0); got != 0 {
		t.Fatalf("expected 0 for empty ratio, got %v", got)
	}
}

func TestPercentage_Rounding(t *testing.T) {
	if got := Percentage(1, 3); got != 33.3 {
		t.Fatalf("expected 33.3, got %v", got)
	}
	if got := Percentage(2, 3); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
}

func TestStatePercentages_SumNear100(t *testing.T) {
	summary := Compute(sampleDevices(), nil)
	total := 0.0
	for _, pct := range summary.StatePercentages() {
		total += pct
	}
	if math.Abs(total-100) > 0.5 {
		t.Fatalf("state percentages sum to %v, expected within 0.5 of 100", total)
	}
}

func TestDonationsByInterlocuteur(t *testing.T) {
	donations := []partners.Donation{
		{InterlocuteurID: 1, TypeAppareil: inventory.DeviceTypePC, Quantite: 5},
		{InterlocuteurID: 1, TypeAppareil: inventory.DeviceTypeSmartphone, Quantite: 3},
		{InterlocuteurID: 2, TypeAppareil: inventory.DeviceTypePC, Quantite: 2},
	}
	rollups := DonationsByInterlocuteur(donations)

	first := rollups[1]
	if first.PCs != 5 || first.Smartphones != 3 || first.Total != 8 {
		t.Fatalf("unexpected rollup for structure 1: %+v", first)
	}
	second := rollups[2]
	if second.PCs != 2 || second.Total != 2 {
		t.Fatalf("unexpected rollup for structure 2: %+v", second)
	}
}

func TestDevicesForInterlocuteur(t *testing.T) {
	matched := DevicesForInterlocuteur(sampleDevices(), 1)
	if len(matched) != 2 {
		t.Fatalf("expected 2 devices for structure 1, got %d", len(matched))
	}
	for _, d := range matched {
		if d.InterlocuteurID != 1 {
			t.Fatalf("unexpected device %+v", d)
		}
	}
	if got := DevicesForInterlocuteur(sampleDevices(), 99); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
