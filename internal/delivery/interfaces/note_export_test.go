package interfaces

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"banque-numerique/internal/dates"
	delivery "banque-numerique/internal/delivery/domain"
)

func preparedOrder() *delivery.Order {
	return &delivery.Order{
		ID:                 1,
		NumeroCommande:     "CMD-2024-0117",
		TypeAppareil:       delivery.OrderTypePC,
		NomStructure:       "Association Emmaüs Connect",
		Adresse:            "12 rue de Crimée",
		Ville:              "Paris",
		CodePostal:         "75019",
		NomDemandeur:       "Marie Dubois",
		ContactDemandeur:   "01 42 45 78 90",
		DateCommande:       dates.New(2024, time.April, 22),
		Statut:             delivery.StatutPrepare,
		NumeroBonLivraison: "BL-1001",
	}
}

func TestBuildDeliveryNotePDF(t *testing.T) {
	payload, err := BuildDeliveryNotePDF(preparedOrder())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF")) {
		t.Fatalf("expected a pdf document, got %q", payload[:8])
	}
}

func TestBuildDeliveryNotePDF_RequiresNoteNumber(t *testing.T) {
	order := preparedOrder()
	order.NumeroBonLivraison = ""
	_, err := BuildDeliveryNotePDF(order)
	if !errors.Is(err, delivery.ErrNotPrepared) {
		t.Fatalf("expected ErrNotPrepared, got %v", err)
	}
}

func TestBuildDeliveryNotePDF_NilOrder(t *testing.T) {
	if _, err := BuildDeliveryNotePDF(nil); err == nil {
		t.Fatal("expected error for nil order")
	}
}
