// Package payment holds the payment authorization collaborator used by checkout.
// Only a simulated gateway exists; no real card network is contacted.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrDeclined = errors.New("payment declined")

type Charge struct {
	Amount        decimal.Decimal
	CustomerEmail string
	CardLast4     string
	Description   string
}

type Authorization struct {
	Reference    string
	AuthorizedAt time.Time
}

type Authorizer interface {
	Authorize(ctx context.Context, charge Charge) (Authorization, error)
}

type AuthorizerFunc func(ctx context.Context, charge Charge) (Authorization, error)

func (f AuthorizerFunc) Authorize(ctx context.Context, charge Charge) (Authorization, error) {
	return f(ctx, charge)
}

// Simulated waits Delay and then approves every charge, unless Decline is set.
type Simulated struct {
	Delay   time.Duration
	Decline bool
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

func (s *Simulated) Authorize(ctx context.Context, charge Charge) (Authorization, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Authorization{}, fmt.Errorf("authorize %s: %w", charge.Amount, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Authorization{}, fmt.Errorf("authorize %s: %w", charge.Amount, err)
	}
	if s.Decline {
		return Authorization{}, ErrDeclined
	}
	return Authorization{
		Reference:    "sim_" + uuid.NewString(),
		AuthorizedAt: time.Now().UTC(),
	}, nil
}
