package service

import (
	"context"
	"testing"

	"salesdash/internal/domains"
	"salesdash/internal/storage"
	"salesdash/internal/storage/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductDefaults(t *testing.T) {
	svc := NewProductService(memory.NewProductStore())
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, domains.ProductCreate{Name: "  Course ", Price: decimal.NewFromInt(297)})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Course", product.Name)
	assert.Equal(t, domains.ProductDigital, product.Type)
	assert.Equal(t, domains.ProductActive, product.Status)
	assert.False(t, product.CreatedAt.IsZero())

	listed, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewProductService(memory.NewProductStore())

	tests := []struct {
		name    string
		payload domains.ProductCreate
		field   string
	}{
		{"blank name", domains.ProductCreate{Name: " ", Price: decimal.NewFromInt(1)}, "name"},
		{"negative price", domains.ProductCreate{Name: "x", Price: decimal.NewFromInt(-1)}, "price"},
		{"sub-cent price", domains.ProductCreate{Name: "x", Price: decimal.RequireFromString("9.999")}, "price"},
		{"unknown type", domains.ProductCreate{Name: "x", Type: "service"}, "type"},
		{"unknown status", domains.ProductCreate{Name: "x", Status: "archived"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tt.payload)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestPriceScale(t *testing.T) {
	svc := NewProductService(memory.NewProductStore())
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, domains.ProductCreate{Name: "Shirt", Price: decimal.RequireFromString("39.990")})
	require.NoError(t, err)
	assert.Equal(t, "39.99", product.Price.StringFixed(2))

	_, err = svc.UpdateProduct(ctx, product.ID, domains.ProductCreate{Name: "Shirt", Price: decimal.RequireFromString("9.999")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")

	stored, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "39.99", stored.Price.StringFixed(2))
}

func TestUpdateProductKeepsOrders(t *testing.T) {
	stores := memory.New()
	svc := NewProductService(stores.Products)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, domains.ProductCreate{Name: "Shirt", Price: decimal.RequireFromString("39.99")})
	require.NoError(t, err)
	order, err := stores.Orders.AddOrder(ctx, domains.Order{ProductName: product.Name, Amount: product.Price, Status: domains.OrderCompleted})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, product.ID, domains.ProductCreate{Name: "Shirt", Price: decimal.NewFromInt(45), Status: domains.ProductInactive})
	require.NoError(t, err)
	assert.Equal(t, "45", updated.Price.String())
	assert.Equal(t, product.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.IsActive())

	stored, err := stores.Orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "39.99", stored.Amount.String())

	_, err = svc.UpdateProduct(ctx, "ghost", domains.ProductCreate{Name: "x"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc := NewProductService(memory.NewProductStore())
	ctx := context.Background()
	product, err := svc.CreateProduct(ctx, domains.ProductCreate{Name: "Course"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
