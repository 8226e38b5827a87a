// Package redisstore keeps checkout idempotency keys in redis, so several API
// processes share them.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salesdash/internal/storage"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "salesdash:checkout:"
	pendingMarker = "-"
)

// releasePending deletes the key only while no order has been recorded for it.
var releasePending = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type IdempotencyStore struct {
	rdb *goredis.Client
}

// Connect dials addr and pings it before returning.
func Connect(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewIdempotencyStore(rdb *goredis.Client) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, pendingMarker, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("reserve key: %w", err)
	}
	if ok {
		return "", true, nil
	}
	value, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, fmt.Errorf("reserve %s: key vanished: %w", key, storage.ErrConflict)
		}
		return "", false, fmt.Errorf("load key: %w", err)
	}
	if value == pendingMarker {
		return "", false, fmt.Errorf("reserve %s: %w", key, storage.ErrConflict)
	}
	return value, false, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key, orderID string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, orderID, ttl).Err(); err != nil {
		return fmt.Errorf("complete key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := releasePending.Run(ctx, s.rdb, []string{keyPrefix + key}, pendingMarker).Err(); err != nil {
		return fmt.Errorf("release key: %w", err)
	}
	return nil
}

// PurgeExpired has nothing to do: redis expires keys through their TTL.
func (s *IdempotencyStore) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
