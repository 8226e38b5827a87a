package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salesdash/internal/domains"
	"salesdash/internal/payment"
	"salesdash/internal/pricing"
	"salesdash/internal/service"
	"salesdash/internal/storage/memory"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	router  *mux.Router
	stores  *memory.Stores
	token   string
	decline *bool
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	stores := memory.New()
	svcStores := service.Stores{
		Pages:       stores.Pages,
		Products:    stores.Products,
		Orders:      stores.Orders,
		Idempotency: stores.Idempotency,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	decline := false
	authorizer := payment.AuthorizerFunc(func(context.Context, payment.Charge) (payment.Authorization, error) {
		if decline {
			return payment.Authorization{}, payment.ErrDeclined
		}
		return payment.Authorization{Reference: "ok"}, nil
	})

	auth := service.NewAuthService(service.MerchantCredentials{
		Merchant:     domains.Merchant{FullName: "John Doe", Email: "john@example.com"},
		PasswordHash: string(hash),
	}, "secret")
	router := Router(Services{
		Auth:      auth,
		Pages:     service.NewPageService(stores.Pages, stores.Products, "https://shop.test"),
		Products:  service.NewProductService(stores.Products),
		Orders:    service.NewOrderService(stores.Orders),
		Analytics: service.NewAnalyticsService(svcStores),
		Checkout: service.NewCheckoutService(svcStores, authorizer, pricing.NewEngine(pricing.DefaultAddOnPrice), service.CheckoutConfig{
			PaymentTimeout: time.Second,
		}),
	})

	api := &testAPI{router: router, stores: stores, decline: &decline}
	rec := api.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "john@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	var tokens TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	api.token = tokens.AccessToken
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func checkoutBody(addOn bool) map[string]any {
	return map[string]any{
		"form": map[string]string{
			"email": "jane@example.com", "firstName": "Jane", "lastName": "Doe",
			"address": "1 Main St", "city": "Springfield", "state": "IL", "zipCode": "62701",
			"country": "US", "cardNumber": "4242424242424242", "expiryDate": "12/29",
			"cvv": "123", "nameOnCard": "Jane Doe",
		},
		"addOnAccepted": addOn,
	}
}

func (a *testAPI) publishedPage(t *testing.T, price string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Course", "price": price})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[domains.Product](t, rec)

	rec = a.do(t, http.MethodPost, "/api/pages", map[string]any{"title": "My Great Page", "productId": product.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	page := decode[domains.SalesPage](t, rec)

	rec = a.do(t, http.MethodPost, "/api/pages/"+page.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return page.ID
}

func TestDashboardRequiresToken(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""

	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/pages", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/auth/me", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/health", nil).Code)
}

func TestLoginFailure(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "john@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	me := api.do(t, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "John Doe", decode[domains.Merchant](t, me).FullName)
}

func TestBuilderFlow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/pages", map[string]any{"title": "My Great Page"})
	require.Equal(t, http.StatusCreated, rec.Code)
	page := decode[domains.SalesPage](t, rec)
	assert.Equal(t, "my-great-page", page.Slug)

	rec = api.do(t, http.MethodPost, "/api/pages/"+page.ID+"/elements", map[string]string{"type": "hero"})
	require.Equal(t, http.StatusCreated, rec.Code)
	hero := decode[domains.ContentBlock](t, rec)
	assert.Equal(t, domains.BlockHero, hero.Kind)

	rec = api.do(t, http.MethodPatch, "/api/pages/"+page.ID+"/elements/"+hero.ID, map[string]string{"headline": "Hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello", decode[domains.ContentBlock](t, rec).Content.(domains.HeroContent).Headline)

	rec = api.do(t, http.MethodPatch, "/api/pages/"+page.ID+"/elements/"+hero.ID, map[string]any{"headline": 5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/pages/"+page.ID+"/elements/missing", map[string]string{"headline": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/pages/"+page.ID+"/elements", map[string]string{"type": "carousel"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/pages/"+page.ID, map[string]string{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "my-great-page", decode[domains.SalesPage](t, rec).Slug)

	rec = api.do(t, http.MethodDelete, "/api/pages/"+page.ID+"/elements/"+hero.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[domains.SalesPage](t, rec).Elements)
	rec = api.do(t, http.MethodDelete, "/api/pages/"+page.ID+"/elements/"+hero.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/pages/"+page.ID+"/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://shop.test/checkout/"+page.ID, decode[ShareResponse](t, rec).URL)

	assert.Equal(t, http.StatusNoContent, api.do(t, http.MethodDelete, "/api/pages/"+page.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/pages/"+page.ID, nil).Code)
}

func TestCheckoutFlow(t *testing.T) {
	api := newTestAPI(t)
	pageID := api.publishedPage(t, "297")
	api.token = ""

	rec := api.do(t, http.MethodGet, "/api/checkout/"+pageID+"?addOn=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[CheckoutPageResponse](t, rec)
	assert.Equal(t, "29.99", view.AddOnPrice)
	assert.Equal(t, "326.99", view.Totals.GrandTotal)

	rec = api.do(t, http.MethodPost, "/api/checkout/"+pageID, checkoutBody(true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[CheckoutResponse](t, rec)
	assert.Equal(t, "326.99", result.Order.Amount.StringFixed(2))
	assert.Equal(t, domains.OrderCompleted, result.Order.Status)
	require.NotNil(t, result.Totals)
	assert.Equal(t, "326.99", result.Totals.GrandTotal)
}

func TestCheckoutErrors(t *testing.T) {
	api := newTestAPI(t)
	pageID := api.publishedPage(t, "39.99")

	body := checkoutBody(false)
	body["form"].(map[string]string)["email"] = ""
	rec := api.do(t, http.MethodPost, "/api/checkout/"+pageID, body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email"`)

	*api.decline = true
	rec = api.do(t, http.MethodPost, "/api/checkout/"+pageID, checkoutBody(false))
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	orders, err := api.stores.Orders.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)

	require.Equal(t, http.StatusOK, api.do(t, http.MethodPost, "/api/pages/"+pageID+"/unpublish", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/checkout/"+pageID, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/checkout/unknown", nil).Code)
}

func TestCheckoutIdempotencyHeader(t *testing.T) {
	api := newTestAPI(t)
	pageID := api.publishedPage(t, "39.99")

	submit := func() *httptest.ResponseRecorder {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(checkoutBody(false)))
		req := httptest.NewRequest(http.MethodPost, "/api/checkout/"+pageID, &buf)
		req.Header.Set("Idempotency-Key", "k-1")
		rec := httptest.NewRecorder()
		api.router.ServeHTTP(rec, req)
		return rec
	}

	first := submit()
	require.Equal(t, http.StatusCreated, first.Code)
	second := submit()
	require.Equal(t, http.StatusOK, second.Code)
	assert.True(t, decode[CheckoutResponse](t, second).Replayed)
	assert.Equal(t, decode[CheckoutResponse](t, first).Order.ID, decode[CheckoutResponse](t, second).Order.ID)
}

func TestOrdersAndAnalytics(t *testing.T) {
	api := newTestAPI(t)
	pageID := api.publishedPage(t, "39.99")
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/checkout/"+pageID, checkoutBody(false)).Code)
	_, err := api.stores.Orders.AddOrder(context.Background(), domains.Order{
		CustomerName: "Mike Chen", CustomerEmail: "mike@example.com", Amount: decimal.NewFromInt(5), Status: domains.OrderPending,
	})
	require.NoError(t, err)

	rec := api.do(t, http.MethodGet, "/api/orders?status=completed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]domains.Order](t, rec)
	require.Len(t, orders, 1)

	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/orders/"+orders[0].ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/orders/nope", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, api.do(t, http.MethodGet, "/api/orders?status=lost", nil).Code)

	rec = api.do(t, http.MethodGet, "/api/analytics/customers?q=jane", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@example.com")
	assert.NotContains(t, rec.Body.String(), "mike@example.com")

	rec = api.do(t, http.MethodGet, "/api/analytics/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"publishedPages":1`)
}

func TestProductValidation(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodPost, "/api/products", map[string]any{"name": "", "price": "-1"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[map[string]any](t, rec)
	fields := body["fields"].(map[string]any)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
}
