package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"banque-numerique/internal/dates"
	partners "banque-numerique/internal/partners/domain"
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

// Service manages partner structures and their donation records.
type Service struct {
	store partners.Store
	clock Clock
}

// NewService constructs a partners service.
func NewService(store partners.Store, clock Clock) (*Service, error) {
	if store == nil {
		return nil, errors.New("partners service: nil store")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{store: store, clock: clock}, nil
}

// CreateInterlocuteur validates and stores a new structure. A second
// contact without a name is dropped rather than stored empty.
func (s *Service) CreateInterlocuteur(ctx context.Context, interlocuteur partners.Interlocuteur) (*partners.Interlocuteur, error) {
	report := validation.Validate(interlocuteur.ValidationRecord(), validation.KindInterlocuteur)
	if report.Status == validation.StatusError {
		return nil, &validation.Error{Report: report}
	}
	if interlocuteur.Interlocuteur2 != nil && interlocuteur.Interlocuteur2.Nom == "" {
		interlocuteur.Interlocuteur2 = nil
	}
	if interlocuteur.DateAjout.IsZero() {
		interlocuteur.DateAjout = dates.FromTime(s.clock.Now())
	}
	interlocuteur.ID = 0
	if err := s.store.CreateInterlocuteur(ctx, &interlocuteur); err != nil {
		return nil, err
	}
	return &interlocuteur, nil
}

// UpdateInterlocuteur replaces the structure matching id. DateAjout is
// immutable.
func (s *Service) UpdateInterlocuteur(ctx context.Context, id int64, interlocuteur partners.Interlocuteur) (*partners.Interlocuteur, error) {
	current, err := s.store.GetInterlocuteur(ctx, id)
	if err != nil {
		return nil, err
	}
	report := validation.Validate(interlocuteur.ValidationRecord(), validation.KindInterlocuteur)
	if report.Status == validation.StatusError {
		return nil, &validation.Error{Report: report}
	}
	if interlocuteur.Interlocuteur2 != nil && interlocuteur.Interlocuteur2.Nom == "" {
		interlocuteur.Interlocuteur2 = nil
	}
	interlocuteur.ID = id
	interlocuteur.DateAjout = current.DateAjout
	if err := s.store.UpdateInterlocuteur(ctx, &interlocuteur); err != nil {
		return nil, err
	}
	return &interlocuteur, nil
}

// DeleteInterlocuteur removes the structure and cascades to its
// donations.
func (s *Service) DeleteInterlocuteur(ctx context.Context, id int64) error {
	return s.store.DeleteInterlocuteur(ctx, id)
}

// GetInterlocuteur loads one structure.
func (s *Service) GetInterlocuteur(ctx context.Context, id int64) (*partners.Interlocuteur, error) {
	return s.store.GetInterlocuteur(ctx, id)
}

// ListInterlocuteurs returns all structures in insertion order.
func (s *Service) ListInterlocuteurs(ctx context.Context) ([]partners.Interlocuteur, error) {
	return s.store.ListInterlocuteurs(ctx)
}

// SearchInterlocuteurs narrows the collection by a case-insensitive
// substring over name, city and contact fields.
func (s *Service) SearchInterlocuteurs(ctx context.Context, term string) ([]partners.Interlocuteur, error) {
	all, err := s.store.ListInterlocuteurs(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all, nil
	}
	filtered := make([]partners.Interlocuteur, 0, len(all))
	for _, i := range all {
		if strings.Contains(i.SearchText(), term) {
			filtered = append(filtered, i)
		}
	}
	return filtered, nil
}

// CreateDonation stores a donation after checking that the referenced
// structure exists. The structure name is denormalized at creation and
// a DON reference is generated when the caller left it blank.
func (s *Service) CreateDonation(ctx context.Context, donation partners.Donation) (*partners.Donation, error) {
	if err := donation.Validate(); err != nil {
		return nil, err
	}
	interlocuteur, err := s.store.GetInterlocuteur(ctx, donation.InterlocuteurID)
	if err != nil {
		if errors.Is(err, partners.ErrInterlocuteurNotFound) {
			return nil, partners.ErrUnknownInterlocuteur
		}
		return nil, err
	}
	donation.NomStructure = interlocuteur.NomStructure
	if donation.DateDon.IsZero() {
		donation.DateDon = dates.FromTime(s.clock.Now())
	}
	if donation.NumeroReference == "" {
		existing, err := s.store.ListDonations(ctx)
		if err != nil {
			return nil, err
		}
		donation.NumeroReference = partners.NextDonationReference(existing, s.clock.Now().Year())
	}
	donation.ID = 0
	if err := s.store.CreateDonation(ctx, &donation); err != nil {
		return nil, err
	}
	return &donation, nil
}

// UpdateDonation replaces the donation matching id, re-checking the
// structure reference.
func (s *Service) UpdateDonation(ctx context.Context, id int64, donation partners.Donation) (*partners.Donation, error) {
	current, err := s.store.GetDonation(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := donation.Validate(); err != nil {
		return nil, err
	}
	interlocuteur, err := s.store.GetInterlocuteur(ctx, donation.InterlocuteurID)
	if err != nil {
		if errors.Is(err, partners.ErrInterlocuteurNotFound) {
			return nil, partners.ErrUnknownInterlocuteur
		}
		return nil, err
	}
	donation.ID = id
	donation.NomStructure = interlocuteur.NomStructure
	donation.NumeroReference = current.NumeroReference
	if err := s.store.UpdateDonation(ctx, &donation); err != nil {
		return nil, err
	}
	return &donation, nil
}

// DeleteDonation removes the donation matching id.
func (s *Service) DeleteDonation(ctx context.Context, id int64) error {
	return s.store.DeleteDonation(ctx, id)
}

// ListDonations returns all donations in insertion order.
func (s *Service) ListDonations(ctx context.Context) ([]partners.Donation, error) {
	return s.store.ListDonations(ctx)
}

// ListDonationsByInterlocuteur returns the donations referencing one
// structure.
func (s *Service) ListDonationsByInterlocuteur(ctx context.Context, interlocuteurID int64) ([]partners.Donation, error) {
	all, err := s.store.ListDonations(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]partners.Donation, 0, len(all))
	for _, d := range all {
		if d.InterlocuteurID == interlocuteurID {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}
