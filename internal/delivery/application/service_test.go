package application

import (
	"context"
	"errors"
	"testing"
	"time"

	delivery "banque-numerique/internal/delivery/domain"
	deliverymem "banque-numerique/internal/delivery/infrastructure/memory"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) *Service {
	t.Helper()
	clock := fixedClock{now: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)}
	service, err := NewService(deliverymem.NewOrderRepository(), clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func validOrder() delivery.Order {
	return delivery.Order{
		NumeroCommande:   "CMD-2024-0117",
		TypeAppareil:     delivery.OrderTypePC,
		NomStructure:     "Association Emmaüs Connect",
		Ville:            "Paris",
		NomDemandeur:     "Marie Dubois",
		ContactDemandeur: "01 42 45 78 90",
	}
}

func mustCreate(t *testing.T, service *Service) *delivery.Order {
	t.Helper()
	created, err := service.Create(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return created
}

func TestCreate_ForcesPendingState(t *testing.T) {
	service := newTestService(t)

	order := validOrder()
	order.Statut = delivery.StatutLivre
	order.NumeroBonLivraison = "BL-9999"
	created, err := service.Create(context.Background(), order)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Statut != delivery.StatutEnAttente {
		t.Fatalf("expected En attente, got %s", created.Statut)
	}
	if created.NumeroBonLivraison != "" {
		t.Fatalf("expected blank note number, got %s", created.NumeroBonLivraison)
	}
	if created.DateCommande.String() != "2024-05-10" {
		t.Fatalf("expected default DateCommande, got %s", created.DateCommande)
	}
}

func TestCreate_RejectsIncompleteOrder(t *testing.T) {
	service := newTestService(t)

	order := validOrder()
	order.NomDemandeur = ""
	_, err := service.Create(context.Background(), order)
	if !errors.Is(err, delivery.ErrMissingRequester) {
		t.Fatalf("expected ErrMissingRequester, got %v", err)
	}
}

func TestGenerateDeliveryNote_SequenceStartsAt1001(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	first := mustCreate(t, service)
	second := mustCreate(t, service)

	prepared, err := service.GenerateDeliveryNote(ctx, first.ID)
	if err != nil {
		t.Fatalf("generate first note: %v", err)
	}
	if prepared.NumeroBonLivraison != "BL-1001" {
		t.Fatalf("expected BL-1001, got %s", prepared.NumeroBonLivraison)
	}
	if prepared.Statut != delivery.StatutPrepare {
		t.Fatalf("expected Préparé, got %s", prepared.Statut)
	}

	next, err := service.GenerateDeliveryNote(ctx, second.ID)
	if err != nil {
		t.Fatalf("generate second note: %v", err)
	}
	if next.NumeroBonLivraison != "BL-1002" {
		t.Fatalf("expected BL-1002, got %s", next.NumeroBonLivraison)
	}
}

func TestGenerateDeliveryNote_RejectsPreparedOrder(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()
	order := mustCreate(t, service)

	if _, err := service.GenerateDeliveryNote(ctx, order.ID); err != nil {
		t.Fatalf("first generation: %v", err)
	}
	_, err := service.GenerateDeliveryNote(ctx, order.ID)
	if !errors.Is(err, delivery.ErrAlreadyPrepared) {
		t.Fatalf("expected ErrAlreadyPrepared, got %v", err)
	}
}

func TestGenerateDeliveryNote_RejectedOrderDoesNotConsumeNumber(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	first := mustCreate(t, service)
	second := mustCreate(t, service)

	if _, err := service.GenerateDeliveryNote(ctx, first.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	// Retry on the already prepared order must not advance the counter.
	if _, err := service.GenerateDeliveryNote(ctx, first.ID); !errors.Is(err, delivery.ErrAlreadyPrepared) {
		t.Fatalf("expected ErrAlreadyPrepared, got %v", err)
	}
	prepared, err := service.GenerateDeliveryNote(ctx, second.ID)
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}
	if prepared.NumeroBonLivraison != "BL-1002" {
		t.Fatalf("expected BL-1002, got %s", prepared.NumeroBonLivraison)
	}
}

func TestNumbersNotReusedAfterDelete(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	first := mustCreate(t, service)
	if _, err := service.GenerateDeliveryNote(ctx, first.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := service.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second := mustCreate(t, service)
	prepared, err := service.GenerateDeliveryNote(ctx, second.ID)
	if err != nil {
		t.Fatalf("generate after delete: %v", err)
	}
	if prepared.NumeroBonLivraison != "BL-1002" {
		t.Fatalf("expected BL-1002 after delete, got %s", prepared.NumeroBonLivraison)
	}
}

func TestConfirmDelivery_Transitions(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()
	order := mustCreate(t, service)

	if _, err := service.ConfirmDelivery(ctx, order.ID); !errors.Is(err, delivery.ErrNotPrepared) {
		t.Fatalf("expected ErrNotPrepared for pending order, got %v", err)
	}
	if _, err := service.GenerateDeliveryNote(ctx, order.ID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	delivered, err := service.ConfirmDelivery(ctx, order.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if delivered.Statut != delivery.StatutLivre {
		t.Fatalf("expected Livré, got %s", delivered.Statut)
	}
	if _, err := service.ConfirmDelivery(ctx, order.ID); !errors.Is(err, delivery.ErrAlreadyDelivered) {
		t.Fatalf("expected ErrAlreadyDelivered, got %v", err)
	}
}

func TestUpdate_PreservesStateAndNote(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()
	order := mustCreate(t, service)

	prepared, err := service.GenerateDeliveryNote(ctx, order.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	update := *prepared
	update.Ville = "Montreuil"
	update.Statut = delivery.StatutEnAttente
	update.NumeroBonLivraison = ""
	updated, err := service.Update(ctx, order.ID, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Statut != delivery.StatutPrepare {
		t.Fatalf("statut changed through Update: %s", updated.Statut)
	}
	if updated.NumeroBonLivraison != prepared.NumeroBonLivraison {
		t.Fatalf("note number changed through Update: %s", updated.NumeroBonLivraison)
	}
	if updated.Ville != "Montreuil" {
		t.Fatalf("expected mutable field updated, got %s", updated.Ville)
	}
}
