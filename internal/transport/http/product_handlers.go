package httptransport

import (
	"context"
	"net/http"

	"salesdash/internal/domains"
	"salesdash/internal/httpx"
)

type ProductHandlers struct {
	service ProductServices
}

type ProductServices interface {
	CreateProduct(ctx context.Context, payload domains.ProductCreate) (domains.Product, error)
	UpdateProduct(ctx context.Context, productID string, payload domains.ProductCreate) (domains.Product, error)
	GetProduct(ctx context.Context, productID string) (domains.Product, error)
	ListProducts(ctx context.Context) ([]domains.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

func NewProductHandlers(service ProductServices) *ProductHandlers {
	return &ProductHandlers{service: service}
}

func (h *ProductHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		writeError(w, err, "list products")
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *ProductHandlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	payload, err := httpx.ReadBody[domains.ProductCreate](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	product, err := h.service.CreateProduct(r.Context(), payload)
	if err != nil {
		writeError(w, err, "create product")
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *ProductHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), httpx.PathVar(r, "id"))
	if err != nil {
		writeError(w, err, "get product")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *ProductHandlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	payload, err := httpx.ReadBody[domains.ProductCreate](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	product, err := h.service.UpdateProduct(r.Context(), httpx.PathVar(r, "id"), payload)
	if err != nil {
		writeError(w, err, "update product")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *ProductHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), httpx.PathVar(r, "id")); err != nil {
		writeError(w, err, "delete product")
		return
	}
	httpx.NoContent(w)
}
