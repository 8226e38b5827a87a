package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/payment"
	"salesdash/internal/pricing"
	"salesdash/internal/storage"
)

type CheckoutConfig struct {
	PaymentTimeout time.Duration
	IdempotencyTTL time.Duration
}

type CheckoutService struct {
	pages       PageStore
	products    ProductStore
	orders      OrderStore
	idempotency IdempotencyStore
	payments    payment.Authorizer
	pricing     pricing.Engine
	cfg         CheckoutConfig
}

func NewCheckoutService(stores Stores, payments payment.Authorizer, engine pricing.Engine, cfg CheckoutConfig) *CheckoutService {
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	return &CheckoutService{
		pages:       stores.Pages,
		products:    stores.Products,
		orders:      stores.Orders,
		idempotency: stores.Idempotency,
		payments:    payments,
		pricing:     engine,
		cfg:         cfg,
	}
}

// Resolve loads what a buyer sees at /checkout/{pageID}. Drafts are reported as not published.
func (s *CheckoutService) Resolve(ctx context.Context, pageID string) (domains.CheckoutView, error) {
	page, err := s.pages.GetPage(ctx, pageID)
	if err != nil {
		return domains.CheckoutView{}, err
	}
	if !page.IsPublished() {
		return domains.CheckoutView{}, ErrPageNotPublished
	}
	if page.ProductID == "" {
		return domains.CheckoutView{}, ErrPageHasNoProduct
	}
	product, err := s.products.GetProduct(ctx, page.ProductID)
	if err != nil {
		return domains.CheckoutView{}, fmt.Errorf("load product: %w", err)
	}
	return domains.CheckoutView{Page: page, Product: product, AddOnPrice: s.pricing.AddOnPrice}, nil
}

func (s *CheckoutService) Quote(ctx context.Context, pageID string, addOnAccepted bool) (domains.Totals, error) {
	view, err := s.Resolve(ctx, pageID)
	if err != nil {
		return domains.Totals{}, err
	}
	return s.pricing.ComputeTotal(view.Product, addOnAccepted), nil
}

// Submit validates the buyer form, authorizes the payment and records a completed order.
// A failed or timed out payment returns ErrPaymentFailed and writes nothing.
func (s *CheckoutService) Submit(ctx context.Context, pageID string, request domains.CheckoutRequest) (domains.CheckoutResult, error) {
	view, err := s.Resolve(ctx, pageID)
	if err != nil {
		return domains.CheckoutResult{}, err
	}
	if missing := request.Form.MissingFields(); len(missing) > 0 {
		return domains.CheckoutResult{}, &ValidationError{Fields: missing}
	}
	if !view.Product.IsActive() {
		return domains.CheckoutResult{}, ErrProductUnavailable
	}

	key := ""
	if k := strings.TrimSpace(request.IdempotencyKey); k != "" && s.idempotency != nil {
		key = pageID + ":" + k
		orderID, reserved, err := s.idempotency.Reserve(ctx, key, s.cfg.IdempotencyTTL)
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return domains.CheckoutResult{}, ErrCheckoutInProgress
			}
			return domains.CheckoutResult{}, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if !reserved {
			order, err := s.orders.GetOrder(ctx, orderID)
			if err != nil {
				return domains.CheckoutResult{}, fmt.Errorf("load replayed order: %w", err)
			}
			slog.Info("checkout replayed", "page", pageID, "order", order.ID)
			return domains.CheckoutResult{Order: order, Replayed: true}, nil
		}
	}

	order, totals, err := s.charge(ctx, view, request)
	if err != nil {
		if key != "" {
			if relErr := s.idempotency.Release(ctx, key); relErr != nil {
				slog.Error("release idempotency key failed", "err", relErr, "page", pageID)
			}
		}
		return domains.CheckoutResult{}, err
	}
	if key != "" {
		s.completeKey(ctx, key, order.ID)
	}

	slog.Info("checkout completed", "page", pageID, "order", order.ID, "amount", order.Amount.String(), "add_on", request.AddOnAccepted)
	return domains.CheckoutResult{Order: order, Totals: &totals}, nil
}

// completeKey records the order under key, retrying once. The order already exists, so a
// failure here is logged rather than returned; the key then stays pending until its TTL.
func (s *CheckoutService) completeKey(ctx context.Context, key, orderID string) {
	ctx = context.WithoutCancel(ctx)
	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		if err = s.idempotency.Complete(ctx, key, orderID, s.cfg.IdempotencyTTL); err == nil {
			return
		}
		slog.Warn("complete idempotency key failed", "err", err, "order", orderID, "attempt", attempt)
	}
	slog.Error("idempotency key left pending", "err", err, "order", orderID)
}

func (s *CheckoutService) charge(ctx context.Context, view domains.CheckoutView, request domains.CheckoutRequest) (domains.Order, domains.Totals, error) {
	totals := s.pricing.ComputeTotal(view.Product, request.AddOnAccepted)

	payCtx := ctx
	if s.cfg.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(ctx, s.cfg.PaymentTimeout)
		defer cancel()
	}
	auth, err := s.payments.Authorize(payCtx, payment.Charge{
		Amount:        totals.GrandTotal,
		CustomerEmail: request.Form.Email,
		CardLast4:     last4(request.Form.CardNumber),
		Description:   view.Product.Name,
	})
	if err != nil {
		slog.Warn("payment not authorized", "err", err, "page", view.Page.ID)
		return domains.Order{}, domains.Totals{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	order, err := s.orders.AddOrder(ctx, domains.Order{
		CustomerName:  request.Form.CustomerName(),
		CustomerEmail: strings.TrimSpace(request.Form.Email),
		ProductName:   view.Product.Name,
		Amount:        totals.GrandTotal,
		Status:        domains.OrderCompleted,
		PaymentMethod: domains.PaymentCreditCard,
	})
	if err != nil {
		slog.Error("Save order error", "err", err, "authorization", auth.Reference)
		return domains.Order{}, domains.Totals{}, fmt.Errorf("save order: %w", err)
	}
	return order, totals, nil
}

func last4(card string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, card)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
