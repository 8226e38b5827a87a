package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/storage"

	"github.com/google/uuid"
)

// OrderStore is append-only; orders keep insertion order.
type OrderStore struct {
	mu     sync.RWMutex
	orders []domains.Order
	index  map[string]int
	now    func() time.Time
}

func NewOrderStore() *OrderStore {
	return &OrderStore{index: make(map[string]int), now: utcNow}
}

// AddOrder assigns the id and creation time.
func (s *OrderStore) AddOrder(_ context.Context, order domains.Order) (domains.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = uuid.NewString()
	order.CreatedAt = s.now()
	s.index[order.ID] = len(s.orders)
	s.orders = append(s.orders, order)
	return order, nil
}

// Import stores orders that already carry an id and timestamp, e.g. demo data.
func (s *OrderStore) Import(_ context.Context, order domains.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[order.ID]; ok {
		return fmt.Errorf("import order %s: %w", order.ID, storage.ErrConflict)
	}
	s.index[order.ID] = len(s.orders)
	s.orders = append(s.orders, order)
	return nil
}

func (s *OrderStore) GetOrder(_ context.Context, id string) (domains.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domains.Order{}, fmt.Errorf("get order %s: %w", id, storage.ErrNotFound)
	}
	return s.orders[i], nil
}

func (s *OrderStore) ListOrders(_ context.Context) ([]domains.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domains.Order(nil), s.orders...), nil
}
