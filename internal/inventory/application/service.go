package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"banque-numerique/internal/dates"
	inventory "banque-numerique/internal/inventory/domain"
	"banque-numerique/internal/validation"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default UTC clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Service performs device CRUD. Every write is gated by the shared
// validation rules; a record classified "error" is rejected before it
// reaches the repository.
type Service struct {
	repo  inventory.DeviceRepository
	clock Clock
}

// NewService constructs a device service.
func NewService(repo inventory.DeviceRepository, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("inventory service: nil repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{repo: repo, clock: clock}, nil
}

// Create validates and stores a new device. DateAjout defaults to
// today and the inventory number is generated from the current
// collection when the caller left it blank.
func (s *Service) Create(ctx context.Context, device inventory.Device) (*inventory.Device, error) {
	if !device.Type.IsValid() {
		return nil, inventory.ErrInvalidDeviceType
	}
	if device.NumeroInventaire == "" {
		existing, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		device.NumeroInventaire = inventory.NextInventoryNumber(existing, s.clock.Now().Year())
	}
	report := validation.Validate(device.ValidationRecord(), device.ValidationKind())
	if report.Status == validation.StatusError {
		return nil, &validation.Error{Report: report}
	}
	if device.DateAjout.IsZero() {
		device.DateAjout = dates.FromTime(s.clock.Now())
	}
	device.ID = 0
	if err := s.repo.Create(ctx, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// Update replaces the device matching id with the given record.
// DateAjout is immutable: the stored value wins.
func (s *Service) Update(ctx context.Context, id int64, device inventory.Device) (*inventory.Device, error) {
	if !device.Type.IsValid() {
		return nil, inventory.ErrInvalidDeviceType
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	report := validation.Validate(device.ValidationRecord(), device.ValidationKind())
	if report.Status == validation.StatusError {
		return nil, &validation.Error{Report: report}
	}
	device.ID = id
	device.DateAjout = current.DateAjout
	if err := s.repo.Update(ctx, &device); err != nil {
		return nil, err
	}
	return &device, nil
}

// Delete removes the device matching id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Get loads one device.
func (s *Service) Get(ctx context.Context, id int64) (*inventory.Device, error) {
	return s.repo.Get(ctx, id)
}

// List returns all devices in insertion order.
func (s *Service) List(ctx context.Context) ([]inventory.Device, error) {
	return s.repo.List(ctx)
}

// Search narrows the collection by type and free-text term. The type
// filter accepts "Tous" as the pass-through sentinel; the term matches
// case-insensitively against every stringified field. Filtering never
// mutates the source and is idempotent.
func (s *Service) Search(ctx context.Context, deviceType, term string) ([]inventory.Device, error) {
	devices, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterDevices(devices, deviceType, term), nil
}

// FilterDevices applies the type and search-term predicates to a
// device snapshot.
func FilterDevices(devices []inventory.Device, deviceType, term string) []inventory.Device {
	term = strings.ToLower(strings.TrimSpace(term))
	filtered := make([]inventory.Device, 0, len(devices))
	for _, d := range devices {
		if deviceType != "" && deviceType != "Tous" && string(d.Type) != deviceType {
			continue
		}
		if term != "" && !strings.Contains(d.SearchText(), term) {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}
