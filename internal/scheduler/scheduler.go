package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type ExpiredKeyPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// KeySweeper drops expired checkout idempotency keys on a fixed interval.
type KeySweeper struct {
	purger   ExpiredKeyPurger
	interval time.Duration
	now      func() time.Time
}

func NewKeySweeper(purger ExpiredKeyPurger, interval time.Duration) *KeySweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &KeySweeper{
		purger:   purger,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *KeySweeper) Start(ctx context.Context) {
	if s.purger == nil {
		slog.Warn("key sweeper skipped: no store configured")
		return
	}
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		s.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx)
			}
		}
	}()
}

func (s *KeySweeper) run(ctx context.Context) {
	purged, err := s.purger.PurgeExpired(ctx, s.now())
	if err != nil {
		slog.Error("purge expired checkout keys failed", "err", err)
		return
	}
	if purged > 0 {
		slog.Info("expired checkout keys purged", "count", purged)
	}
}
