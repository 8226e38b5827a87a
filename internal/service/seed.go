package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderImporter writes orders that already carry their id and timestamp.
type OrderImporter interface {
	Import(ctx context.Context, order domains.Order) error
}

func demoID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("salesdash/demo/"+name)).String()
}

// SeedDemo loads the demo catalog, one published page and two orders.
// Ids are derived from names, so running it twice changes nothing.
func SeedDemo(ctx context.Context, stores Stores, orders OrderImporter, now time.Time) error {
	course := domains.Product{
		ID:          demoID("product/course"),
		Name:        "Digital Marketing Course",
		Type:        domains.ProductDigital,
		Price:       decimal.NewFromInt(297),
		Description: "Complete digital marketing course with 50+ lessons",
		Image:       "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=400&h=300&fit=crop",
		Status:      domains.ProductActive,
		CreatedAt:   now,
	}
	shirt := domains.Product{
		ID:          demoID("product/shirt"),
		Name:        "Premium T-Shirt",
		Type:        domains.ProductPhysical,
		Price:       decimal.RequireFromString("39.99"),
		Description: "High-quality cotton t-shirt with custom design",
		Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=300&fit=crop",
		Status:      domains.ProductActive,
		CreatedAt:   now,
	}
	for _, p := range []domains.Product{course, shirt} {
		if err := stores.Products.SaveProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}

	page := domains.NewSalesPage(domains.PageCreate{
		Title:     "Digital Marketing Masterclass",
		ProductID: course.ID,
		Template:  domains.TemplateModern,
	}, now)
	page.ID = demoID("page/masterclass")
	hero := page.AppendElement(domains.BlockHero, now)
	if _, err := page.UpdateElementContent(hero.ID, domains.ContentPatch{
		"headline":        []byte(`"Master Digital Marketing in 30 Days"`),
		"subheadline":     []byte(`"Transform your business with proven strategies"`),
		"ctaText":         []byte(`"Get Started Now"`),
		"backgroundImage": []byte(`"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=1200&h=600&fit=crop"`),
	}, now); err != nil {
		return fmt.Errorf("seed hero: %w", err)
	}
	features := page.AppendElement(domains.BlockFeatures, now)
	if _, err := page.UpdateElementContent(features.ID, domains.ContentPatch{
		"title":    []byte(`"What You'll Learn"`),
		"features": []byte(`["SEO Optimization","Social Media Marketing","Email Marketing","Content Strategy"]`),
	}, now); err != nil {
		return fmt.Errorf("seed features: %w", err)
	}
	page.SetStatus(domains.PagePublished, now)
	if err := stores.Pages.SavePage(ctx, page); err != nil {
		return fmt.Errorf("seed page: %w", err)
	}

	demoOrders := []domains.Order{
		{
			ID:            demoID("order/sarah"),
			CustomerName:  "Sarah Johnson",
			CustomerEmail: "sarah@example.com",
			ProductName:   course.Name,
			Amount:        course.Price,
			Status:        domains.OrderCompleted,
			PaymentMethod: domains.PaymentCreditCard,
			CreatedAt:     now.Add(-24 * time.Hour),
		},
		{
			ID:            demoID("order/mike"),
			CustomerName:  "Mike Chen",
			CustomerEmail: "mike@example.com",
			ProductName:   shirt.Name,
			Amount:        shirt.Price,
			Status:        domains.OrderPending,
			PaymentMethod: domains.PaymentPayPal,
			CreatedAt:     now.Add(-time.Hour),
		},
	}
	for _, o := range demoOrders {
		if err := orders.Import(ctx, o); err != nil && !errors.Is(err, storage.ErrConflict) {
			return fmt.Errorf("seed order %s: %w", o.ID, err)
		}
	}

	slog.Info("demo data loaded", "page", page.ID, "products", 2, "orders", len(demoOrders))
	return nil
}
