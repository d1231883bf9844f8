package memory

import (
	"context"
	"errors"
	"sync"

	inventory "banque-numerique/internal/inventory/domain"
)

// DeviceRepository is the in-memory device store. It is the
// authoritative store for a process lifetime: ids are monotonic, never
// reused after a delete, and List preserves insertion order for stable
// display.
type DeviceRepository struct {
	mu      sync.RWMutex
	devices []inventory.Device
	nextID  int64
}

// NewDeviceRepository constructs an empty repository.
func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{}
}

// Get loads a device by id.
func (r *DeviceRepository) Get(ctx context.Context, id int64) (*inventory.Device, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.devices {
		if d.ID == id {
			copied := d
			return &copied, nil
		}
	}
	return nil, inventory.ErrDeviceNotFound
}

// List returns a snapshot of all devices in insertion order.
func (r *DeviceRepository) List(ctx context.Context) ([]inventory.Device, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make([]inventory.Device, len(r.devices))
	copy(snapshot, r.devices)
	return snapshot, nil
}

// Create appends the device and assigns the next id.
func (r *DeviceRepository) Create(ctx context.Context, device *inventory.Device) error {
	_ = ctx
	if device == nil {
		return errors.New("memory device repo: nil device")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	device.ID = r.nextIDLocked()
	r.devices = append(r.devices, *device)
	return nil
}

// Update replaces the record matching the device id.
func (r *DeviceRepository) Update(ctx context.Context, device *inventory.Device) error {
	_ = ctx
	if device == nil {
		return errors.New("memory device repo: nil device")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.devices {
		if d.ID == device.ID {
			r.devices[i] = *device
			return nil
		}
	}
	return inventory.ErrDeviceNotFound
}

// Delete removes the record matching id.
func (r *DeviceRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.devices {
		if d.ID == id {
			r.devices = append(r.devices[:i], r.devices[i+1:]...)
			return nil
		}
	}
	return inventory.ErrDeviceNotFound
}

func (r *DeviceRepository) nextIDLocked() int64 {
	r.nextID++
	return r.nextID
}
