package httptransport

import (
	"net/http"

	"salesdash/internal/httpx"

	"github.com/gorilla/mux"
)

// Services are the use cases the API exposes. main builds them once and hands them in.
type Services struct {
	Auth      AuthServices
	Pages     PageServices
	Products  ProductServices
	Orders    OrderServices
	Analytics AnalyticsServices
	Checkout  CheckoutServices
}

func Router(services Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(httpx.Logging)

	authHandler := NewAuthHandlers(services.Auth)
	pageHandler := NewPageHandlers(services.Pages)
	productHandler := NewProductHandlers(services.Products)
	orderHandler := NewOrderHandlers(services.Orders, services.Analytics)
	checkoutHandler := NewCheckoutHandlers(services.Checkout)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", authHandler.Refresh).Methods(http.MethodPost)
	auth.Handle("/me", httpx.Protected(services.Auth)(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	checkout := api.PathPrefix("/checkout").Subrouter()
	checkout.HandleFunc("/{pageId}", checkoutHandler.GetCheckout).Methods(http.MethodGet)
	checkout.HandleFunc("/{pageId}", checkoutHandler.Submit).Methods(http.MethodPost)

	dashboard := api.NewRoute().Subrouter()
	dashboard.Use(httpx.Protected(services.Auth))

	dashboard.HandleFunc("/pages", pageHandler.ListPages).Methods(http.MethodGet)
	dashboard.HandleFunc("/pages", pageHandler.CreatePage).Methods(http.MethodPost)
	dashboard.HandleFunc("/pages/{id}", pageHandler.GetPage).Methods(http.MethodGet)
	dashboard.HandleFunc("/pages/{id}", pageHandler.UpdateSettings).Methods(http.MethodPatch)
	dashboard.HandleFunc("/pages/{id}", pageHandler.DeletePage).Methods(http.MethodDelete)
	dashboard.HandleFunc("/pages/{id}/elements", pageHandler.AppendElement).Methods(http.MethodPost)
	dashboard.HandleFunc("/pages/{id}/elements/{elementId}", pageHandler.UpdateElement).Methods(http.MethodPatch)
	dashboard.HandleFunc("/pages/{id}/elements/{elementId}", pageHandler.RemoveElement).Methods(http.MethodDelete)
	dashboard.HandleFunc("/pages/{id}/publish", pageHandler.Publish).Methods(http.MethodPost)
	dashboard.HandleFunc("/pages/{id}/unpublish", pageHandler.Unpublish).Methods(http.MethodPost)
	dashboard.HandleFunc("/pages/{id}/share", pageHandler.Share).Methods(http.MethodGet)

	dashboard.HandleFunc("/products", productHandler.ListProducts).Methods(http.MethodGet)
	dashboard.HandleFunc("/products", productHandler.CreateProduct).Methods(http.MethodPost)
	dashboard.HandleFunc("/products/{id}", productHandler.GetProduct).Methods(http.MethodGet)
	dashboard.HandleFunc("/products/{id}", productHandler.UpdateProduct).Methods(http.MethodPut)
	dashboard.HandleFunc("/products/{id}", productHandler.DeleteProduct).Methods(http.MethodDelete)

	dashboard.HandleFunc("/orders", orderHandler.ListOrders).Methods(http.MethodGet)
	dashboard.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods(http.MethodGet)

	dashboard.HandleFunc("/analytics/customers", orderHandler.Customers).Methods(http.MethodGet)
	dashboard.HandleFunc("/analytics/revenue", orderHandler.Revenue).Methods(http.MethodGet)
	dashboard.HandleFunc("/analytics/dashboard", orderHandler.Dashboard).Methods(http.MethodGet)

	return router
}
