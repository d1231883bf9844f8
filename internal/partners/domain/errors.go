package partners

import "errors"

var (
	// ErrInterlocuteurNotFound indicates an unknown interlocuteur id.
	ErrInterlocuteurNotFound = errors.New("partners: interlocuteur not found")
	// ErrDonationNotFound indicates an unknown donation id.
	ErrDonationNotFound = errors.New("partners: donation not found")
	// ErrMissingInterlocuteur indicates a donation without a structure
	// reference.
	ErrMissingInterlocuteur = errors.New("partners: donation requires an interlocuteur")
	// ErrUnknownInterlocuteur indicates a donation referencing a
	// structure that does not exist. Rejected before insertion.
	ErrUnknownInterlocuteur = errors.New("partners: referenced interlocuteur does not exist")
	// ErrInvalidQuantity indicates a non-positive donation quantity.
	ErrInvalidQuantity = errors.New("partners: quantity must be positive")
)
