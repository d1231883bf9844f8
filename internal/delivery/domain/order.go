package delivery

import (
	"context"
	"strings"

	"banque-numerique/internal/dates"
)

// OrderType extends the device families with the extra categories seen
// on imported delivery orders.
type OrderType string

const (
	OrderTypePC         OrderType = "PC"
	OrderTypeSmartphone OrderType = "Smartphone"
	OrderTypeTablette   OrderType = "Tablette"
	OrderTypeAutre      OrderType = "Autre"
)

// IsValid reports whether the type is a known order category.
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypePC, OrderTypeSmartphone, OrderTypeTablette, OrderTypeAutre:
		return true
	}
	return false
}

// Statut is the delivery order state. Transitions are forward-only:
// En attente → Préparé → Livré.
type Statut string

const (
	StatutEnAttente Statut = "En attente"
	StatutPrepare   Statut = "Préparé"
	StatutLivre     Statut = "Livré"
)

// Order is a delivery request for one device, usually imported from an
// external ordering tool, tracked until physical handover.
type Order struct {
	ID                 int64      `json:"id"`
	NumeroCommande     string     `json:"numeroCommande"`
	TypeAppareil       OrderType  `json:"typeAppareil"`
	NomStructure       string     `json:"nomStructure"`
	Adresse            string     `json:"adresse"`
	Ville              string     `json:"ville"`
	CodePostal         string     `json:"codePostal"`
	NomDemandeur       string     `json:"nomDemandeur"`
	ContactDemandeur   string     `json:"contactDemandeur"`
	EmailDemandeur     string     `json:"emailDemandeur,omitempty"`
	Note               string     `json:"note,omitempty"`
	DateCommande       dates.Date `json:"dateCommande"`
	Statut             Statut     `json:"statut"`
	NumeroBonLivraison string     `json:"numeroBonLivraison,omitempty"`
}

// Validate checks order invariants.
func (o Order) Validate() error {
	if o.NumeroCommande == "" {
		return ErrMissingOrderNumber
	}
	if !o.TypeAppareil.IsValid() {
		return ErrInvalidOrderType
	}
	if o.NomStructure == "" {
		return ErrMissingStructure
	}
	if o.NomDemandeur == "" {
		return ErrMissingRequester
	}
	return nil
}

// AttachDeliveryNote moves a pending order to Préparé with the given
// delivery note number. Orders already past En attente are rejected.
func (o *Order) AttachDeliveryNote(number string) error {
	if o.Statut != StatutEnAttente {
		return ErrAlreadyPrepared
	}
	if number == "" {
		return ErrMissingNoteNumber
	}
	o.NumeroBonLivraison = number
	o.Statut = StatutPrepare
	return nil
}

// MarkDelivered moves a prepared order to the terminal Livré state.
func (o *Order) MarkDelivered() error {
	switch o.Statut {
	case StatutPrepare:
		o.Statut = StatutLivre
		return nil
	case StatutLivre:
		return ErrAlreadyDelivered
	default:
		return ErrNotPrepared
	}
}

// SearchText returns the lowercase concatenation of the displayed
// fields for free-text matching.
func (o Order) SearchText() string {
	parts := []string{
		o.NumeroCommande, string(o.TypeAppareil), o.NomStructure, o.Ville,
		o.NomDemandeur, string(o.Statut), o.NumeroBonLivraison,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// OrderRepository manages delivery orders and owns the global
// delivery-note counter. NextNoteSequence starts at 1001, increments
// by exactly one per call and never reuses a value, even when orders
// are deleted afterwards.
type OrderRepository interface {
	Get(ctx context.Context, id int64) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id int64) error
	NextNoteSequence(ctx context.Context) (int64, error)
}
