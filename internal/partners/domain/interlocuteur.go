package partners

import (
	"context"
	"strings"

	"banque-numerique/internal/dates"
	"banque-numerique/internal/validation"
)

// Contact is one named contact person within a structure.
type Contact struct {
	Nom       string `json:"nom"`
	Email     string `json:"email,omitempty"`
	Telephone string `json:"telephone,omitempty"`
}

// Interlocuteur is a partner structure the inventory exchanges devices
// with, carrying one required and one optional contact.
type Interlocuteur struct {
	ID                 int64      `json:"id"`
	NomStructure       string     `json:"nomStructure"`
	CodePostal         string     `json:"codePostal"`
	Ville              string     `json:"ville"`
	Interlocuteur1     Contact    `json:"interlocuteur1"`
	Interlocuteur2     *Contact   `json:"interlocuteur2,omitempty"`
	DateInitiale       dates.Date `json:"dateInitiale"`
	DateRenouvellement dates.Date `json:"dateRenouvellement,omitempty"`
	DateAjout          dates.Date `json:"dateAjout"`
}

// ValidationRecord flattens the structure into the shared validation
// record shape.
func (i Interlocuteur) ValidationRecord() validation.Record {
	return validation.Record{
		"nomStructure":         i.NomStructure,
		"codePostal":           i.CodePostal,
		"ville":                i.Ville,
		"interlocuteur1.nom":   i.Interlocuteur1.Nom,
		"interlocuteur1.email": i.Interlocuteur1.Email,
	}
}

// SearchText returns the lowercase concatenation of the fields the
// free-text search runs over.
func (i Interlocuteur) SearchText() string {
	parts := []string{i.NomStructure, i.CodePostal, i.Ville, i.Interlocuteur1.Nom, i.Interlocuteur1.Email}
	if i.Interlocuteur2 != nil {
		parts = append(parts, i.Interlocuteur2.Nom, i.Interlocuteur2.Email)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Store manages interlocuteurs and their donations together so the
// delete cascade is atomic from the caller's point of view.
type Store interface {
	GetInterlocuteur(ctx context.Context, id int64) (*Interlocuteur, error)
	ListInterlocuteurs(ctx context.Context) ([]Interlocuteur, error)
	CreateInterlocuteur(ctx context.Context, interlocuteur *Interlocuteur) error
	UpdateInterlocuteur(ctx context.Context, interlocuteur *Interlocuteur) error
	// DeleteInterlocuteur removes the structure and every donation
	// referencing it; both removals are visible together or not at all.
	DeleteInterlocuteur(ctx context.Context, id int64) error

	GetDonation(ctx context.Context, id int64) (*Donation, error)
	ListDonations(ctx context.Context) ([]Donation, error)
	CreateDonation(ctx context.Context, donation *Donation) error
	UpdateDonation(ctx context.Context, donation *Donation) error
	DeleteDonation(ctx context.Context, id int64) error
}
