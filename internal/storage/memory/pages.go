package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"salesdash/internal/domains"
	"salesdash/internal/storage"
)

// PageStore copies pages on the way in and out so callers never share block slices with it.
type PageStore struct {
	mu    sync.RWMutex
	pages map[string]*domains.SalesPage
}

func NewPageStore() *PageStore {
	return &PageStore{pages: make(map[string]*domains.SalesPage)}
}

func (s *PageStore) GetPage(_ context.Context, id string) (*domains.SalesPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	if !ok {
		return nil, fmt.Errorf("get page %s: %w", id, storage.ErrNotFound)
	}
	return page.Clone(), nil
}

func (s *PageStore) SavePage(_ context.Context, page *domains.SalesPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = page.Clone()
	return nil
}

func (s *PageStore) DeletePage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[id]; !ok {
		return fmt.Errorf("delete page %s: %w", id, storage.ErrNotFound)
	}
	delete(s.pages, id)
	return nil
}

func (s *PageStore) ListPages(_ context.Context) ([]*domains.SalesPage, error) {
	s.mu.RLock()
	pages := make([]*domains.SalesPage, 0, len(s.pages))
	for _, page := range s.pages {
		pages = append(pages, page.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(pages, func(i, j int) bool {
		if pages[i].CreatedAt.Equal(pages[j].CreatedAt) {
			return pages[i].ID < pages[j].ID
		}
		return pages[i].CreatedAt.Before(pages[j].CreatedAt)
	})
	return pages, nil
}
