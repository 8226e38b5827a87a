// Package providers implements the service stores on postgres through a pgx pool.
package providers

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Providers struct {
	PageProvider        *PageProvider
	ProductProvider     *ProductProvider
	OrderProvider       *OrderProvider
	IdempotencyProvider *IdempotencyProvider
}

func New(db *pgxpool.Pool) *Providers {
	return &Providers{
		PageProvider:        NewPageProvider(db),
		ProductProvider:     NewProductProvider(db),
		OrderProvider:       NewOrderProvider(db),
		IdempotencyProvider: NewIdempotencyProvider(db),
	}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
