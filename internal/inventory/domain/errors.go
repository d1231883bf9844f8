package inventory

import "errors"

var (
	// ErrDeviceNotFound indicates an unknown device id.
	ErrDeviceNotFound = errors.New("inventory: device not found")
	// ErrInvalidDeviceType indicates a type outside PC/Smartphone.
	ErrInvalidDeviceType = errors.New("inventory: invalid device type")
)
