package memory

import (
	"context"
	"errors"
	"sync"

	partners "banque-numerique/internal/partners/domain"
)

// Store is the in-memory partners store. One mutex guards both
// collections so the interlocuteur delete cascade is atomic.
type Store struct {
	mu                sync.RWMutex
	interlocuteurs    []partners.Interlocuteur
	donations         []partners.Donation
	nextInterlocuteur int64
	nextDonation      int64
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{}
}

// GetInterlocuteur loads a structure by id.
func (s *Store) GetInterlocuteur(ctx context.Context, id int64) (*partners.Interlocuteur, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, i := range s.interlocuteurs {
		if i.ID == id {
			copied := i
			return &copied, nil
		}
	}
	return nil, partners.ErrInterlocuteurNotFound
}

// ListInterlocuteurs returns a snapshot in insertion order.
func (s *Store) ListInterlocuteurs(ctx context.Context) ([]partners.Interlocuteur, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]partners.Interlocuteur, len(s.interlocuteurs))
	copy(snapshot, s.interlocuteurs)
	return snapshot, nil
}

// CreateInterlocuteur appends the structure and assigns the next id.
// Ids are monotonic and never reused after a delete.
func (s *Store) CreateInterlocuteur(ctx context.Context, interlocuteur *partners.Interlocuteur) error {
	_ = ctx
	if interlocuteur == nil {
		return errors.New("memory partners store: nil interlocuteur")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextInterlocuteur++
	interlocuteur.ID = s.nextInterlocuteur
	s.interlocuteurs = append(s.interlocuteurs, *interlocuteur)
	return nil
}

// UpdateInterlocuteur replaces the record matching the id.
func (s *Store) UpdateInterlocuteur(ctx context.Context, interlocuteur *partners.Interlocuteur) error {
	_ = ctx
	if interlocuteur == nil {
		return errors.New("memory partners store: nil interlocuteur")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.interlocuteurs {
		if existing.ID == interlocuteur.ID {
			s.interlocuteurs[i] = *interlocuteur
			return nil
		}
	}
	return partners.ErrInterlocuteurNotFound
}

// DeleteInterlocuteur removes the structure and cascades to every
// donation referencing it under one lock.
func (s *Store) DeleteInterlocuteur(ctx context.Context, id int64) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	index := -1
	for i, existing := range s.interlocuteurs {
		if existing.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return partners.ErrInterlocuteurNotFound
	}
	s.interlocuteurs = append(s.interlocuteurs[:index], s.interlocuteurs[index+1:]...)

	kept := s.donations[:0]
	for _, d := range s.donations {
		if d.InterlocuteurID != id {
			kept = append(kept, d)
		}
	}
	s.donations = kept
	return nil
}

// GetDonation loads a donation by id.
func (s *Store) GetDonation(ctx context.Context, id int64) (*partners.Donation, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.donations {
		if d.ID == id {
			copied := d
			return &copied, nil
		}
	}
	return nil, partners.ErrDonationNotFound
}

// ListDonations returns a snapshot in insertion order.
func (s *Store) ListDonations(ctx context.Context) ([]partners.Donation, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]partners.Donation, len(s.donations))
	copy(snapshot, s.donations)
	return snapshot, nil
}

// CreateDonation appends the donation and assigns the next id.
func (s *Store) CreateDonation(ctx context.Context, donation *partners.Donation) error {
	_ = ctx
	if donation == nil {
		return errors.New("memory partners store: nil donation")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextDonation++
	donation.ID = s.nextDonation
	s.donations = append(s.donations, *donation)
	return nil
}

// UpdateDonation replaces the record matching the id.
func (s *Store) UpdateDonation(ctx context.Context, donation *partners.Donation) error {
	_ = ctx
	if donation == nil {
		return errors.New("memory partners store: nil donation")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.donations {
		if existing.ID == donation.ID {
			s.donations[i] = *donation
			return nil
		}
	}
	return partners.ErrDonationNotFound
}

// DeleteDonation removes the record matching id.
func (s *Store) DeleteDonation(ctx context.Context, id int64) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.donations {
		if d.ID == id {
			s.donations = append(s.donations[:i], s.donations[i+1:]...)
			return nil
		}
	}
	return partners.ErrDonationNotFound
}
