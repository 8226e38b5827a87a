package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PageProvider struct {
	db *pgxpool.Pool
}

func NewPageProvider(db *pgxpool.Pool) *PageProvider {
	return &PageProvider{
		db: db,
	}
}

type pageRow struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Slug      string    `db:"slug"`
	Template  string    `db:"template"`
	Status    string    `db:"status"`
	ProductID string    `db:"product_id"`
	Elements  []byte    `db:"elements"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const selectPage = `
	SELECT id, title, slug, template, status, product_id, elements, created_at, updated_at
	FROM sales_pages`

func (r pageRow) toDomain() (*domains.SalesPage, error) {
	page := &domains.SalesPage{
		ID:        r.ID,
		Title:     r.Title,
		Slug:      r.Slug,
		Template:  domains.Template(r.Template),
		Status:    domains.PageStatus(r.Status),
		ProductID: r.ProductID,
		Elements:  []domains.ContentBlock{},
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if len(r.Elements) > 0 {
		if err := json.Unmarshal(r.Elements, &page.Elements); err != nil {
			return nil, fmt.Errorf("decode elements of page %s: %w", r.ID, err)
		}
	}
	return page, nil
}

func (s *PageProvider) GetPage(ctx context.Context, id string) (*domains.SalesPage, error) {
	rows, err := s.db.Query(ctx, selectPage+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("query page: %w", err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[pageRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get page %s: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("scan page: %w", err)
	}
	return row.toDomain()
}

func (s *PageProvider) ListPages(ctx context.Context) ([]*domains.SalesPage, error) {
	rows, err := s.db.Query(ctx, selectPage+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[pageRow])
	if err != nil {
		return nil, fmt.Errorf("scan pages: %w", err)
	}
	pages := make([]*domains.SalesPage, 0, len(collected))
	for _, row := range collected {
		page, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// SavePage upserts the whole aggregate; elements are stored as one jsonb array.
func (s *PageProvider) SavePage(ctx context.Context, page *domains.SalesPage) error {
	elements := page.Elements
	if elements == nil {
		elements = []domains.ContentBlock{}
	}
	encoded, err := json.Marshal(elements)
	if err != nil {
		return fmt.Errorf("encode elements: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO sales_pages (id, title, slug, template, status, product_id, elements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			slug = EXCLUDED.slug,
			template = EXCLUDED.template,
			status = EXCLUDED.status,
			product_id = EXCLUDED.product_id,
			elements = EXCLUDED.elements,
			updated_at = EXCLUDED.updated_at`,
		page.ID,
		page.Title,
		page.Slug,
		string(page.Template),
		string(page.Status),
		page.ProductID,
		string(encoded),
		page.CreatedAt,
		page.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save page %s: %w", page.ID, err)
	}
	return nil
}

func (s *PageProvider) DeletePage(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM sales_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete page %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
