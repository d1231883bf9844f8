package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"banque-numerique/internal/dates"
	delivery "banque-numerique/internal/delivery/domain"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default UTC clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Service manages delivery orders and delivery note generation.
type Service struct {
	repo  delivery.OrderRepository
	clock Clock
}

// NewService constructs a delivery service.
func NewService(repo delivery.OrderRepository, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("delivery service: nil repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{repo: repo, clock: clock}, nil
}

// Create stores a new order in the En attente state.
func (s *Service) Create(ctx context.Context, order delivery.Order) (*delivery.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if order.DateCommande.IsZero() {
		order.DateCommande = dates.FromTime(s.clock.Now())
	}
	order.ID = 0
	order.Statut = delivery.StatutEnAttente
	order.NumeroBonLivraison = ""
	if err := s.repo.Create(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Update replaces the mutable fields of the order matching id. Statut
// and the delivery note number only move through the dedicated
// transitions.
func (s *Service) Update(ctx context.Context, id int64, order delivery.Order) (*delivery.Order, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	order.ID = id
	order.Statut = current.Statut
	order.NumeroBonLivraison = current.NumeroBonLivraison
	if err := s.repo.Update(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes the order matching id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Get loads one order.
func (s *Service) Get(ctx context.Context, id int64) (*delivery.Order, error) {
	return s.repo.Get(ctx, id)
}

// List returns all orders in insertion order.
func (s *Service) List(ctx context.Context) ([]delivery.Order, error) {
	return s.repo.List(ctx)
}

// GenerateDeliveryNote assigns the next global BL number to a pending
// order and moves it to Préparé. The state is checked before the
// counter is drawn, so a rejected order never consumes a number.
func (s *Service) GenerateDeliveryNote(ctx context.Context, orderID int64) (*delivery.Order, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Statut != delivery.StatutEnAttente {
		return nil, delivery.ErrAlreadyPrepared
	}
	seq, err := s.repo.NextNoteSequence(ctx)
	if err != nil {
		return nil, err
	}
	if err := order.AttachDeliveryNote(fmt.Sprintf("BL-%d", seq)); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmDelivery moves a prepared order to the terminal Livré state.
func (s *Service) ConfirmDelivery(ctx context.Context, orderID int64) (*delivery.Order, error) {
	order, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.MarkDelivered(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
