package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ProductProvider struct {
	db *pgxpool.Pool
}

func NewProductProvider(db *pgxpool.Pool) *ProductProvider {
	return &ProductProvider{
		db: db,
	}
}

// numeric columns are read as text so decimal parses them without float rounding
type productRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Type        string    `db:"type"`
	Price       string    `db:"price"`
	Description string    `db:"description"`
	Image       string    `db:"image"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
}

const selectProduct = `
	SELECT id, name, type, price::text AS price, description, image, status, created_at
	FROM products`

func (r productRow) toDomain() (domains.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return domains.Product{}, fmt.Errorf("parse price of product %s: %w", r.ID, err)
	}
	return domains.Product{
		ID:          r.ID,
		Name:        r.Name,
		Type:        domains.ProductType(r.Type),
		Price:       price,
		Description: r.Description,
		Image:       r.Image,
		Status:      domains.ProductStatus(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
	}, nil
}

func (s *ProductProvider) GetProduct(ctx context.Context, id string) (domains.Product, error) {
	rows, err := s.db.Query(ctx, selectProduct+` WHERE id = $1`, id)
	if err != nil {
		return domains.Product{}, fmt.Errorf("query product: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domains.Product{}, fmt.Errorf("get product %s: %w", id, storage.ErrNotFound)
		}
		return domains.Product{}, fmt.Errorf("scan product: %w", err)
	}
	return row.toDomain()
}

func (s *ProductProvider) ListProducts(ctx context.Context) ([]domains.Product, error) {
	rows, err := s.db.Query(ctx, selectProduct+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	products := make([]domains.Product, 0, len(collected))
	for _, row := range collected {
		product, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (s *ProductProvider) SaveProduct(ctx context.Context, product domains.Product) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO products (id, name, type, price, description, image, status, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			price = EXCLUDED.price,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			status = EXCLUDED.status`,
		product.ID,
		product.Name,
		string(product.Type),
		product.Price.String(),
		product.Description,
		product.Image,
		string(product.Status),
		product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save product %s: %w", product.ID, err)
	}
	return nil
}

func (s *ProductProvider) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete product %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
