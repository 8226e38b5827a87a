package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"salesdash/internal/domains"

	"github.com/google/uuid"
)

type ProductService struct {
	products ProductStore
	now      func() time.Time
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{
		products: products,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, payload domains.ProductCreate) (domains.Product, error) {
	payload = withProductDefaults(payload)
	if err := validateProduct(payload); err != nil {
		return domains.Product{}, err
	}
	product := domains.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(payload.Name),
		Type:        payload.Type,
		Price:       payload.Price,
		Description: payload.Description,
		Image:       payload.Image,
		Status:      payload.Status,
		CreatedAt:   s.now(),
	}
	if err := s.products.SaveProduct(ctx, product); err != nil {
		slog.Error("Save product error", "err", err)
		return domains.Product{}, err
	}
	slog.Info("product created", "product", product.ID, "price", product.Price.String())
	return product, nil
}

// UpdateProduct replaces the editable fields. Orders already written keep their amounts.
func (s *ProductService) UpdateProduct(ctx context.Context, productID string, payload domains.ProductCreate) (domains.Product, error) {
	payload = withProductDefaults(payload)
	if err := validateProduct(payload); err != nil {
		return domains.Product{}, err
	}
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domains.Product{}, err
	}
	product.Name = strings.TrimSpace(payload.Name)
	product.Type = payload.Type
	product.Price = payload.Price
	product.Description = payload.Description
	product.Image = payload.Image
	product.Status = payload.Status
	if err := s.products.SaveProduct(ctx, product); err != nil {
		slog.Error("Save product error", "err", err, "product", productID)
		return domains.Product{}, err
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (domains.Product, error) {
	return s.products.GetProduct(ctx, productID)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domains.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	return s.products.DeleteProduct(ctx, productID)
}

func withProductDefaults(p domains.ProductCreate) domains.ProductCreate {
	if p.Type == "" {
		p.Type = domains.ProductDigital
	}
	if p.Status == "" {
		p.Status = domains.ProductActive
	}
	return p
}

func validateProduct(p domains.ProductCreate) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "name is required"
	}
	if p.Price.IsNegative() {
		fields["price"] = "price must not be negative"
	} else if !p.Price.Equal(p.Price.Round(2)) {
		fields["price"] = "price must have at most 2 decimal places"
	}
	switch p.Type {
	case domains.ProductDigital, domains.ProductPhysical:
	default:
		fields["type"] = "type must be digital or physical"
	}
	switch p.Status {
	case domains.ProductActive, domains.ProductInactive:
	default:
		fields["status"] = "status must be active or inactive"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
