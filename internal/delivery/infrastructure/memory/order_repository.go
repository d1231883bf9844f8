package memory

import (
	"context"
	"errors"
	"sync"

	delivery "banque-numerique/internal/delivery/domain"
)

// Delivery note numbers start here; the counter only moves forward.
const firstNoteSequence = 1001

// OrderRepository is the in-memory delivery order store.
type OrderRepository struct {
	mu       sync.Mutex
	orders   []delivery.Order
	nextID   int64
	noteNext int64
}

// NewOrderRepository constructs an empty repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{noteNext: firstNoteSequence}
}

// Get loads an order by id.
func (r *OrderRepository) Get(ctx context.Context, id int64) (*delivery.Order, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			copied := o
			return &copied, nil
		}
	}
	return nil, delivery.ErrOrderNotFound
}

// List returns a snapshot of all orders in insertion order.
func (r *OrderRepository) List(ctx context.Context) ([]delivery.Order, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	snapshot := make([]delivery.Order, len(r.orders))
	copy(snapshot, r.orders)
	return snapshot, nil
}

// Create appends the order and assigns the next id. Ids are monotonic
// and never reused after a delete.
func (r *OrderRepository) Create(ctx context.Context, order *delivery.Order) error {
	_ = ctx
	if order == nil {
		return errors.New("memory order repo: nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	r.orders = append(r.orders, *order)
	return nil
}

// Update replaces the record matching the order id.
func (r *OrderRepository) Update(ctx context.Context, order *delivery.Order) error {
	_ = ctx
	if order == nil {
		return errors.New("memory order repo: nil order")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == order.ID {
			r.orders[i] = *order
			return nil
		}
	}
	return delivery.ErrOrderNotFound
}

// Delete removes the record matching id. The note counter is not
// touched: spent sequence numbers stay spent.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return delivery.ErrOrderNotFound
}

// NextNoteSequence returns the next delivery note sequence number.
func (r *OrderRepository) NextNoteSequence(ctx context.Context) (int64, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := r.noteNext
	r.noteNext++
	return seq, nil
}
