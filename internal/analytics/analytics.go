// Package analytics derives customer and revenue views from the order history.
// Everything here is a pure function of its inputs; nothing is stored.
package analytics

import (
	"sort"
	"strings"
	"time"

	"salesdash/internal/domains"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Orders     []domains.Order `json:"orders"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	FirstOrder time.Time       `json:"firstOrder"`
	LastOrder  time.Time       `json:"lastOrder"`
}

type RevenueSummary struct {
	TotalRevenue      decimal.Decimal             `json:"totalRevenue"`
	TotalOrders       int                         `json:"totalOrders"`
	CompletedOrders   int                         `json:"completedOrders"`
	AverageOrderValue decimal.Decimal             `json:"averageOrderValue"`
	Customers         int                         `json:"customers"`
	RepeatCustomers   int                         `json:"repeatCustomers"`
	ByStatus          map[domains.OrderStatus]int `json:"byStatus"`
}

type Dashboard struct {
	Revenue        RevenueSummary  `json:"revenue"`
	ActiveProducts int             `json:"activeProducts"`
	TotalPages     int             `json:"totalPages"`
	PublishedPages int             `json:"publishedPages"`
	RecentOrders   []domains.Order `json:"recentOrders"`
}

// Customers groups orders by email. The customer's name comes from their first order;
// the result is sorted by most recent order first.
func Customers(orders []domains.Order) []Customer {
	byEmail := map[string]*Customer{}
	var keys []string
	for _, o := range orders {
		key := strings.ToLower(strings.TrimSpace(o.CustomerEmail))
		c, ok := byEmail[key]
		if !ok {
			c = &Customer{
				ID:         key,
				Name:       o.CustomerName,
				Email:      o.CustomerEmail,
				TotalSpent: decimal.Zero,
				FirstOrder: o.CreatedAt,
				LastOrder:  o.CreatedAt,
			}
			byEmail[key] = c
			keys = append(keys, key)
		}
		c.Orders = append(c.Orders, o)
		c.TotalSpent = c.TotalSpent.Add(o.Amount)
		if o.CreatedAt.Before(c.FirstOrder) {
			c.FirstOrder = o.CreatedAt
		}
		if o.CreatedAt.After(c.LastOrder) {
			c.LastOrder = o.CreatedAt
		}
	}

	customers := make([]Customer, 0, len(keys))
	for _, key := range keys {
		customers = append(customers, *byEmail[key])
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].LastOrder.After(customers[j].LastOrder)
	})
	return customers
}

// SearchCustomers keeps customers whose name or email contains term, ignoring case.
func SearchCustomers(customers []Customer, term string) []Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return customers
	}
	var matched []Customer
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Email), term) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Revenue counts only completed orders toward revenue and average order value.
func Revenue(orders []domains.Order) RevenueSummary {
	summary := RevenueSummary{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TotalOrders:       len(orders),
		ByStatus:          map[domains.OrderStatus]int{},
	}
	for _, o := range orders {
		summary.ByStatus[o.Status]++
		if o.Status == domains.OrderCompleted {
			summary.CompletedOrders++
			summary.TotalRevenue = summary.TotalRevenue.Add(o.Amount)
		}
	}
	if summary.CompletedOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.CompletedOrders))).
			Round(2)
	}
	customers := Customers(orders)
	summary.Customers = len(customers)
	for _, c := range customers {
		if len(c.Orders) > 1 {
			summary.RepeatCustomers++
		}
	}
	return summary
}

// RecentOrders returns up to limit orders, newest first.
func RecentOrders(orders []domains.Order, limit int) []domains.Order {
	recent := append([]domains.Order(nil), orders...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if limit >= 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

func CountActiveProducts(products []domains.Product) int {
	n := 0
	for _, p := range products {
		if p.IsActive() {
			n++
		}
	}
	return n
}

func CountPublished(pages []*domains.SalesPage) int {
	n := 0
	for _, p := range pages {
		if p.IsPublished() {
			n++
		}
	}
	return n
}
