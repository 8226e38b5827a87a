package httptransport

import (
	"context"
	"net/http"

	"salesdash/internal/analytics"
	"salesdash/internal/domains"
	"salesdash/internal/httpx"
)

type OrderHandlers struct {
	orders    OrderServices
	analytics AnalyticsServices
}

type OrderServices interface {
	ListOrders(ctx context.Context, status domains.OrderStatus) ([]domains.Order, error)
	GetOrder(ctx context.Context, orderID string) (domains.Order, error)
}

type AnalyticsServices interface {
	Customers(ctx context.Context, query string) ([]analytics.Customer, error)
	Revenue(ctx context.Context) (analytics.RevenueSummary, error)
	Dashboard(ctx context.Context) (analytics.Dashboard, error)
}

func NewOrderHandlers(orders OrderServices, analytics AnalyticsServices) *OrderHandlers {
	return &OrderHandlers{orders: orders, analytics: analytics}
}

func (h *OrderHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := domains.OrderStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domains.OrderPending, domains.OrderCompleted:
	default:
		httpx.Invalid(w, map[string]string{"status": "status must be pending or completed"})
		return
	}
	orders, err := h.orders.ListOrders(r.Context(), status)
	if err != nil {
		writeError(w, err, "list orders")
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), httpx.PathVar(r, "id"))
	if err != nil {
		writeError(w, err, "get order")
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandlers) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.analytics.Customers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err, "list customers")
		return
	}
	if customers == nil {
		customers = []analytics.Customer{}
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *OrderHandlers) Revenue(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analytics.Revenue(r.Context())
	if err != nil {
		writeError(w, err, "revenue")
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *OrderHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		writeError(w, err, "dashboard")
		return
	}
	httpx.JSON(w, http.StatusOK, dashboard)
}
