package service

import (
	"context"

	"salesdash/internal/domains"
)

type OrderService struct {
	orders OrderStore
}

func NewOrderService(orders OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

// ListOrders returns every order, or only those in status when it is set.
func (s *OrderService) ListOrders(ctx context.Context, status domains.OrderStatus) ([]domains.Order, error) {
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return orders, nil
	}
	filtered := make([]domains.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (domains.Order, error) {
	return s.orders.GetOrder(ctx, orderID)
}
