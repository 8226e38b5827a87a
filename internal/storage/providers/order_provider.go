package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type OrderProvider struct {
	db *pgxpool.Pool
}

func NewOrderProvider(db *pgxpool.Pool) *OrderProvider {
	return &OrderProvider{
		db: db,
	}
}

type orderRow struct {
	ID            string    `db:"id"`
	CustomerName  string    `db:"customer_name"`
	CustomerEmail string    `db:"customer_email"`
	ProductName   string    `db:"product_name"`
	Amount        string    `db:"amount"`
	Status        string    `db:"status"`
	PaymentMethod string    `db:"payment_method"`
	CreatedAt     time.Time `db:"created_at"`
}

const selectOrder = `
	SELECT id, customer_name, customer_email, product_name, amount::text AS amount,
	       status, payment_method, created_at
	FROM orders`

func (r orderRow) toDomain() (domains.Order, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return domains.Order{}, fmt.Errorf("parse amount of order %s: %w", r.ID, err)
	}
	return domains.Order{
		ID:            r.ID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		ProductName:   r.ProductName,
		Amount:        amount,
		Status:        domains.OrderStatus(r.Status),
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt.UTC(),
	}, nil
}

// AddOrder assigns the id; the database assigns created_at.
func (s *OrderProvider) AddOrder(ctx context.Context, order domains.Order) (domains.Order, error) {
	order.ID = uuid.NewString()
	err := s.db.QueryRow(ctx, `
		INSERT INTO orders (id, customer_name, customer_email, product_name, amount, status, payment_method)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		RETURNING created_at`,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.ProductName,
		order.Amount.String(),
		string(order.Status),
		order.PaymentMethod,
	).Scan(&order.CreatedAt)
	if err != nil {
		return domains.Order{}, fmt.Errorf("insert order: %w", err)
	}
	order.CreatedAt = order.CreatedAt.UTC()
	return order, nil
}

func (s *OrderProvider) Import(ctx context.Context, order domains.Order) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO orders (id, customer_name, customer_email, product_name, amount, status, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)`,
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.ProductName,
		order.Amount.String(),
		string(order.Status),
		order.PaymentMethod,
		order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("import order %s: %w", order.ID, storage.ErrConflict)
		}
		return fmt.Errorf("import order: %w", err)
	}
	return nil
}

func (s *OrderProvider) GetOrder(ctx context.Context, id string) (domains.Order, error) {
	rows, err := s.db.Query(ctx, selectOrder+` WHERE id = $1`, id)
	if err != nil {
		return domains.Order{}, fmt.Errorf("query order: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domains.Order{}, fmt.Errorf("get order %s: %w", id, storage.ErrNotFound)
		}
		return domains.Order{}, fmt.Errorf("scan order: %w", err)
	}
	return row.toDomain()
}

// ListOrders returns orders in insertion order.
func (s *OrderProvider) ListOrders(ctx context.Context) ([]domains.Order, error) {
	rows, err := s.db.Query(ctx, selectOrder+` ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	orders := make([]domains.Order, 0, len(collected))
	for _, row := range collected {
		order, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
