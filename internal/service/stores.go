package service

import (
	"context"
	"time"

	"salesdash/internal/domains"
)

type PageStore interface {
	GetPage(ctx context.Context, id string) (*domains.SalesPage, error)
	SavePage(ctx context.Context, page *domains.SalesPage) error
	DeletePage(ctx context.Context, id string) error
	ListPages(ctx context.Context) ([]*domains.SalesPage, error)
}

type ProductStore interface {
	GetProduct(ctx context.Context, id string) (domains.Product, error)
	ListProducts(ctx context.Context) ([]domains.Product, error)
	SaveProduct(ctx context.Context, product domains.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

type OrderStore interface {
	AddOrder(ctx context.Context, order domains.Order) (domains.Order, error)
	GetOrder(ctx context.Context, id string) (domains.Order, error)
	ListOrders(ctx context.Context) ([]domains.Order, error)
}

// IdempotencyStore remembers which order a checkout key produced.
// Reserve returns reserved=false with the order id for a completed key and
// storage.ErrConflict while another submission holds the key.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (orderID string, reserved bool, err error)
	Complete(ctx context.Context, key, orderID string, ttl time.Duration) error
	Release(ctx context.Context, key string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Stores is built once at startup and handed to every service.
type Stores struct {
	Pages       PageStore
	Products    ProductStore
	Orders      OrderStore
	Idempotency IdempotencyStore
}
