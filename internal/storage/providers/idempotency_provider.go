package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salesdash/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyProvider struct {
	db *pgxpool.Pool
}

func NewIdempotencyProvider(db *pgxpool.Pool) *IdempotencyProvider {
	return &IdempotencyProvider{
		db: db,
	}
}

// Reserve inserts the key, taking over an expired row. A live row yields its order id,
// or storage.ErrConflict while the order is not written yet.
func (s *IdempotencyProvider) Reserve(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO checkout_keys (key, order_id, expires_at)
		VALUES ($1, NULL, NOW() + make_interval(secs => $2))
		ON CONFLICT (key) DO UPDATE SET order_id = NULL, expires_at = EXCLUDED.expires_at
		WHERE checkout_keys.expires_at <= NOW()`,
		key, ttl.Seconds(),
	)
	if err != nil {
		return "", false, fmt.Errorf("reserve key: %w", err)
	}
	if tag.RowsAffected() == 1 {
		if err := tx.Commit(ctx); err != nil {
			return "", false, fmt.Errorf("commit reserve: %w", err)
		}
		return "", true, nil
	}

	var orderID *string
	err = tx.QueryRow(ctx, `SELECT order_id FROM checkout_keys WHERE key = $1`, key).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, fmt.Errorf("reserve %s: key vanished: %w", key, storage.ErrConflict)
		}
		return "", false, fmt.Errorf("load key: %w", err)
	}
	if orderID == nil {
		return "", false, fmt.Errorf("reserve %s: %w", key, storage.ErrConflict)
	}
	return *orderID, false, nil
}

func (s *IdempotencyProvider) Complete(ctx context.Context, key, orderID string, ttl time.Duration) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO checkout_keys (key, order_id, expires_at)
		VALUES ($1, $2, NOW() + make_interval(secs => $3))
		ON CONFLICT (key) DO UPDATE SET order_id = EXCLUDED.order_id, expires_at = EXCLUDED.expires_at`,
		key, orderID, ttl.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("complete key: %w", err)
	}
	return nil
}

func (s *IdempotencyProvider) Release(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM checkout_keys WHERE key = $1 AND order_id IS NULL`, key); err != nil {
		return fmt.Errorf("release key: %w", err)
	}
	return nil
}

func (s *IdempotencyProvider) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM checkout_keys WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("purge keys: %w", err)
	}
	return tag.RowsAffected(), nil
}
