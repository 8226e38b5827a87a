package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"salesdash/internal/storage"
)

type idempotencyRecord struct {
	orderID   string
	expiresAt time.Time
}

type IdempotencyStore struct {
	mu      sync.Mutex
	records map[string]idempotencyRecord
	now     func() time.Time
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: make(map[string]idempotencyRecord), now: utcNow}
}

// Reserve claims key for one submission. A completed key yields its order id;
// a key still being processed yields storage.ErrConflict.
func (s *IdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if rec, ok := s.records[key]; ok && now.Before(rec.expiresAt) {
		if rec.orderID == "" {
			return "", false, fmt.Errorf("reserve %s: %w", key, storage.ErrConflict)
		}
		return rec.orderID, false, nil
	}
	s.records[key] = idempotencyRecord{expiresAt: now.Add(ttl)}
	return "", true, nil
}

func (s *IdempotencyStore) Complete(_ context.Context, key, orderID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = idempotencyRecord{orderID: orderID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

func (s *IdempotencyStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for key, rec := range s.records {
		if !now.Before(rec.expiresAt) {
			delete(s.records, key)
			purged++
		}
	}
	return purged, nil
}
