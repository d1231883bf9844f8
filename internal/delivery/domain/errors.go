package delivery

import "errors"

var (
	// ErrOrderNotFound indicates an unknown order id.
	ErrOrderNotFound = errors.New("delivery: order not found")
	// ErrAlreadyPrepared indicates a delivery note was requested for an
	// order that already left En attente.
	ErrAlreadyPrepared = errors.New("delivery: order already prepared")
	// ErrAlreadyDelivered indicates a terminal order.
	ErrAlreadyDelivered = errors.New("delivery: order already delivered")
	// ErrNotPrepared indicates a delivery confirmation on an order that
	// has no delivery note yet.
	ErrNotPrepared = errors.New("delivery: order not prepared")
	// ErrMissingNoteNumber indicates an empty delivery note number.
	ErrMissingNoteNumber = errors.New("delivery: missing note number")
	// ErrMissingOrderNumber indicates an order without its external
	// order number.
	ErrMissingOrderNumber = errors.New("delivery: missing order number")
	// ErrInvalidOrderType indicates an unknown device category.
	ErrInvalidOrderType = errors.New("delivery: invalid order type")
	// ErrMissingStructure indicates an order without a destination.
	ErrMissingStructure = errors.New("delivery: missing destination structure")
	// ErrMissingRequester indicates an order without a requester name.
	ErrMissingRequester = errors.New("delivery: missing requester")
)
