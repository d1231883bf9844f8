package memory

import (
	"context"
	"errors"
	"testing"

	inventory "banque-numerique/internal/inventory/domain"
)

func TestDeviceRepository_CreateAssignsIncreasingIDs(t *testing.T) {
	repo := NewDeviceRepository()
	ctx := context.Background()

	first := &inventory.Device{Type: inventory.DeviceTypePC, Marque: "Dell"}
	second := &inventory.Device{Type: inventory.DeviceTypePC, Marque: "HP"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.ID == 0 || second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestDeviceRepository_IDsNotReusedAfterDelete(t *testing.T) {
	repo := NewDeviceRepository()
	ctx := context.Background()

	first := &inventory.Device{Marque: "Dell"}
	second := &inventory.Device{Marque: "HP"}
	_ = repo.Create(ctx, first)
	_ = repo.Create(ctx, second)
	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third := &inventory.Device{Marque: "Lenovo"}
	if err := repo.Create(ctx, third); err != nil {
		t.Fatalf("create third: %v", err)
	}
	if third.ID == second.ID {
		t.Fatalf("id %d was reused after delete", second.ID)
	}
}

func TestDeviceRepository_ListInsertionOrder(t *testing.T) {
	repo := NewDeviceRepository()
	ctx := context.Background()

	brands := []string{"Dell", "HP", "Apple"}
	for _, brand := range brands {
		if err := repo.Create(ctx, &inventory.Device{Marque: brand}); err != nil {
			t.Fatalf("create %s: %v", brand, err)
		}
	}
	devices, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(devices) != len(brands) {
		t.Fatalf("expected %d devices, got %d", len(brands), len(devices))
	}
	for i, brand := range brands {
		if devices[i].Marque != brand {
			t.Fatalf("position %d: expected %s, got %s", i, brand, devices[i].Marque)
		}
	}
}

func TestDeviceRepository_GetUnknown(t *testing.T) {
	repo := NewDeviceRepository()
	_, err := repo.Get(context.Background(), 42)
	if !errors.Is(err, inventory.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
}

func TestDeviceRepository_UpdatePersists(t *testing.T) {
	repo := NewDeviceRepository()
	ctx := context.Background()

	device := &inventory.Device{Marque: "Dell", Etat: inventory.EtatOccasion}
	_ = repo.Create(ctx, device)

	device.Etat = inventory.EtatRepare
	if err := repo.Update(ctx, device); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err := repo.Get(ctx, device.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Etat != inventory.EtatRepare {
		t.Fatalf("expected Réparé, got %s", stored.Etat)
	}
}
