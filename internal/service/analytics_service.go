package service

import (
	"context"

	"salesdash/internal/analytics"
	"salesdash/internal/domains"

	"golang.org/x/sync/errgroup"
)

const dashboardRecentOrders = 5

type AnalyticsService struct {
	orders   OrderStore
	products ProductStore
	pages    PageStore
}

func NewAnalyticsService(stores Stores) *AnalyticsService {
	return &AnalyticsService{
		orders:   stores.Orders,
		products: stores.Products,
		pages:    stores.Pages,
	}
}

// Customers lists buyers derived from orders, filtered by name or email when query is set.
func (s *AnalyticsService) Customers(ctx context.Context, query string) ([]analytics.Customer, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.SearchCustomers(analytics.Customers(orders), query), nil
}

func (s *AnalyticsService) Revenue(ctx context.Context) (analytics.RevenueSummary, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return analytics.RevenueSummary{}, err
	}
	return analytics.Revenue(orders), nil
}

// Dashboard loads orders, products and pages concurrently.
func (s *AnalyticsService) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	var (
		orders   []domains.Order
		products []domains.Product
		pages    []*domains.SalesPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.products.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pages, err = s.pages.ListPages(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Dashboard{}, err
	}

	return analytics.Dashboard{
		Revenue:        analytics.Revenue(orders),
		ActiveProducts: analytics.CountActiveProducts(products),
		TotalPages:     len(pages),
		PublishedPages: analytics.CountPublished(pages),
		RecentOrders:   analytics.RecentOrders(orders, dashboardRecentOrders),
	}, nil
}
