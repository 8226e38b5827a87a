package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"salesdash/internal/domains"
	"salesdash/internal/httpx"
	"salesdash/internal/pricing"
)

type CheckoutHandlers struct {
	service CheckoutServices
}

type CheckoutServices interface {
	Resolve(ctx context.Context, pageID string) (domains.CheckoutView, error)
	Quote(ctx context.Context, pageID string, addOnAccepted bool) (domains.Totals, error)
	Submit(ctx context.Context, pageID string, request domains.CheckoutRequest) (domains.CheckoutResult, error)
}

func NewCheckoutHandlers(service CheckoutServices) *CheckoutHandlers {
	return &CheckoutHandlers{service: service}
}

// GetCheckout serves the public checkout page; ?addOn=true prices the order bump in.
func (h *CheckoutHandlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	pageID := httpx.PathVar(r, "pageId")
	addOn, _ := strconv.ParseBool(r.URL.Query().Get("addOn"))

	view, err := h.service.Resolve(r.Context(), pageID)
	if err != nil {
		writeError(w, err, "resolve checkout")
		return
	}
	totals, err := h.service.Quote(r.Context(), pageID, addOn)
	if err != nil {
		writeError(w, err, "quote checkout")
		return
	}
	httpx.JSON(w, http.StatusOK, CheckoutPageResponse{
		Page:       view.Page,
		Product:    view.Product,
		AddOnPrice: pricing.Format(view.AddOnPrice),
		Totals:     newTotalsResponse(totals),
	})
}

// Submit accepts the buyer form. The Idempotency-Key header is used when the body carries no key.
func (h *CheckoutHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	request, err := httpx.ReadBody[domains.CheckoutRequest](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	if request.IdempotencyKey == "" {
		request.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	pageID := httpx.PathVar(r, "pageId")
	result, err := h.service.Submit(r.Context(), pageID, request)
	if err != nil {
		writeError(w, err, "checkout")
		return
	}

	response := CheckoutResponse{Order: result.Order, Replayed: result.Replayed}
	if result.Totals != nil {
		totals := newTotalsResponse(*result.Totals)
		response.Totals = &totals
	}
	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
		slog.Info("checkout replay served", "page", pageID, "order", result.Order.ID)
	}
	httpx.JSON(w, status, response)
}
