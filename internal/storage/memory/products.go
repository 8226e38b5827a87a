package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"salesdash/internal/domains"
	"salesdash/internal/storage"
)

type ProductStore struct {
	mu       sync.RWMutex
	products map[string]domains.Product
}

func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]domains.Product)}
}

func (s *ProductStore) GetProduct(_ context.Context, id string) (domains.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[id]
	if !ok {
		return domains.Product{}, fmt.Errorf("get product %s: %w", id, storage.ErrNotFound)
	}
	return product, nil
}

func (s *ProductStore) ListProducts(_ context.Context) ([]domains.Product, error) {
	s.mu.RLock()
	products := make([]domains.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	s.mu.RUnlock()

	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (s *ProductStore) SaveProduct(_ context.Context, product domains.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
	return nil
}

func (s *ProductStore) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return fmt.Errorf("delete product %s: %w", id, storage.ErrNotFound)
	}
	delete(s.products, id)
	return nil
}
