// Package memory keeps every record in process memory. It is the default backend and the one tests use.
package memory

import "time"

type Stores struct {
	Pages       *PageStore
	Products    *ProductStore
	Orders      *OrderStore
	Idempotency *IdempotencyStore
}

func New() *Stores {
	return &Stores{
		Pages:       NewPageStore(),
		Products:    NewProductStore(),
		Orders:      NewOrderStore(),
		Idempotency: NewIdempotencyStore(),
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
