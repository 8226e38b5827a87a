package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/storage/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingOrders struct {
	OrderStore
}

func (failingOrders) ListOrders(context.Context) ([]domains.Order, error) {
	return nil, errors.New("orders offline")
}

func TestDashboardAfterCheckout(t *testing.T) {
	f := newCheckoutFixture(t, "39.99", nil)
	ctx := context.Background()
	_, err := f.checkout.Submit(ctx, f.page.ID, domains.CheckoutRequest{Form: validForm(), AddOnAccepted: true})
	require.NoError(t, err)
	draft := domains.NewSalesPage(domains.PageCreate{Title: "Draft"}, time.Now())
	require.NoError(t, f.stores.Pages.SavePage(ctx, draft))

	svc := NewAnalyticsService(storesOf(f.stores))
	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, "69.98", dash.Revenue.TotalRevenue.StringFixed(2))
	assert.Equal(t, 1, dash.Revenue.CompletedOrders)
	assert.Equal(t, 1, dash.ActiveProducts)
	assert.Equal(t, 2, dash.TotalPages)
	assert.Equal(t, 1, dash.PublishedPages)
	require.Len(t, dash.RecentOrders, 1)
}

func TestCustomersAndRevenue(t *testing.T) {
	stores := memory.New()
	ctx := context.Background()
	for _, o := range []domains.Order{
		{CustomerName: "Ann Lee", CustomerEmail: "ann@example.com", Amount: decimal.NewFromInt(10), Status: domains.OrderCompleted},
		{CustomerName: "Ann Lee", CustomerEmail: "ann@example.com", Amount: decimal.NewFromInt(20), Status: domains.OrderCompleted},
		{CustomerName: "Bob Ray", CustomerEmail: "bob@example.com", Amount: decimal.NewFromInt(5), Status: domains.OrderPending},
	} {
		_, err := stores.Orders.AddOrder(ctx, o)
		require.NoError(t, err)
	}
	svc := NewAnalyticsService(storesOf(stores))

	customers, err := svc.Customers(ctx, "ann")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "30", customers[0].TotalSpent.String())

	revenue, err := svc.Revenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "30", revenue.TotalRevenue.String())
	assert.Equal(t, 1, revenue.RepeatCustomers)
}

func TestDashboardPropagatesStoreError(t *testing.T) {
	stores := storesOf(memory.New())
	stores.Orders = failingOrders{stores.Orders}

	_, err := NewAnalyticsService(stores).Dashboard(context.Background())
	assert.EqualError(t, err, "orders offline")
}
