package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"banque-numerique/internal/dates"
	inventory "banque-numerique/internal/inventory/domain"
	inventorymem "banque-numerique/internal/inventory/infrastructure/memory"
	"banque-numerique/internal/validation"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) *Service {
	t.Helper()
	clock := fixedClock{now: time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)}
	service, err := NewService(inventorymem.NewDeviceRepository(), clock)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}

func validDevice() inventory.Device {
	return inventory.Device{
		Type:        inventory.DeviceTypePC,
		Marque:      "Dell",
		Modele:      "Latitude 5420",
		Annee:       2021,
		Etat:        inventory.EtatOccasion,
		NumeroSerie: "DEL123A21",
	}
}

func TestCreate_GeneratesInventoryNumber(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, validDevice())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.NumeroInventaire != "abn-2024-001" {
		t.Fatalf("expected abn-2024-001, got %s", first.NumeroInventaire)
	}
	second, err := service.Create(ctx, validDevice())
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.NumeroInventaire != "abn-2024-002" {
		t.Fatalf("expected abn-2024-002, got %s", second.NumeroInventaire)
	}
}

func TestCreate_KeepsProvidedInventoryNumber(t *testing.T) {
	service := newTestService(t)

	device := validDevice()
	device.NumeroInventaire = "abn-2023-017"
	created, err := service.Create(context.Background(), device)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.NumeroInventaire != "abn-2023-017" {
		t.Fatalf("expected provided number kept, got %s", created.NumeroInventaire)
	}
}

func TestCreate_DefaultsDateAjout(t *testing.T) {
	service := newTestService(t)

	created, err := service.Create(context.Background(), validDevice())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.DateAjout.String() != "2024-05-10" {
		t.Fatalf("expected 2024-05-10, got %s", created.DateAjout)
	}
}

func TestCreate_RejectsInvalidRecord(t *testing.T) {
	service := newTestService(t)

	device := validDevice()
	device.Marque = ""
	device.NumeroSerie = ""
	_, err := service.Create(context.Background(), device)
	var validationErr *validation.Error
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Report.Status != validation.StatusError {
		t.Fatalf("expected error status, got %s", validationErr.Report.Status)
	}
}

func TestCreate_WarningsDoNotBlock(t *testing.T) {
	service := newTestService(t)

	device := validDevice()
	device.Etat = ""
	if _, err := service.Create(context.Background(), device); err != nil {
		t.Fatalf("warning-level record should be accepted, got %v", err)
	}
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	service := newTestService(t)

	device := validDevice()
	device.Type = "Tablette"
	_, err := service.Create(context.Background(), device)
	if !errors.Is(err, inventory.ErrInvalidDeviceType) {
		t.Fatalf("expected ErrInvalidDeviceType, got %v", err)
	}
}

func TestUpdate_DateAjoutImmutable(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, validDevice())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	update := *created
	update.Etat = inventory.EtatRepare
	update.DateAjout = dates.New(2020, time.January, 1)
	updated, err := service.Update(ctx, created.ID, update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DateAjout.String() != created.DateAjout.String() {
		t.Fatalf("DateAjout changed from %s to %s", created.DateAjout, updated.DateAjout)
	}
	if updated.Etat != inventory.EtatRepare {
		t.Fatalf("expected Réparé, got %s", updated.Etat)
	}
}

func TestSearch_TypeAndTerm(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	pc := validDevice()
	phone := validDevice()
	phone.Type = inventory.DeviceTypeSmartphone
	phone.Marque = "Samsung"
	phone.Modele = "Galaxy A52"
	phone.NumeroSerie = "SAM042B21"
	if _, err := service.Create(ctx, pc); err != nil {
		t.Fatalf("create pc: %v", err)
	}
	if _, err := service.Create(ctx, phone); err != nil {
		t.Fatalf("create phone: %v", err)
	}

	all, err := service.Search(ctx, "Tous", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 with sentinel, got %d", len(all))
	}

	phones, err := service.Search(ctx, "Smartphone", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(phones) != 1 || phones[0].Marque != "Samsung" {
		t.Fatalf("expected the Samsung phone, got %+v", phones)
	}

	matched, err := service.Search(ctx, "", "galaxy")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matched) != 1 || matched[0].Modele != "Galaxy A52" {
		t.Fatalf("expected case-insensitive model match, got %+v", matched)
	}
}

func TestFilterDevices_Idempotent(t *testing.T) {
	devices := []inventory.Device{
		{Type: inventory.DeviceTypePC, Marque: "Dell"},
		{Type: inventory.DeviceTypeSmartphone, Marque: "Apple"},
	}
	once := FilterDevices(devices, "PC", "")
	twice := FilterDevices(once, "PC", "")
	if len(once) != len(twice) {
		t.Fatalf("filtering is not idempotent: %d vs %d", len(once), len(twice))
	}
	if len(devices) != 2 {
		t.Fatal("source slice was mutated")
	}
}
