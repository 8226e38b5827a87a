package httptransport

import (
	"context"
	"net/http"

	"salesdash/internal/domains"
	"salesdash/internal/httpx"
)

type PageHandlers struct {
	service PageServices
}

type PageServices interface {
	CreatePage(ctx context.Context, payload domains.PageCreate) (*domains.SalesPage, error)
	GetPage(ctx context.Context, pageID string) (*domains.SalesPage, error)
	ListPages(ctx context.Context) ([]*domains.SalesPage, error)
	DeletePage(ctx context.Context, pageID string) error
	UpdateSettings(ctx context.Context, pageID string, settings domains.PageSettings) (*domains.SalesPage, error)
	AppendElement(ctx context.Context, pageID string, kind domains.BlockKind) (domains.ContentBlock, error)
	UpdateElementContent(ctx context.Context, pageID, elementID string, patch domains.ContentPatch) (domains.ContentBlock, error)
	RemoveElement(ctx context.Context, pageID, elementID string) (*domains.SalesPage, error)
	Publish(ctx context.Context, pageID string) (*domains.SalesPage, error)
	Unpublish(ctx context.Context, pageID string) (*domains.SalesPage, error)
	ShareURL(ctx context.Context, pageID string) (string, error)
}

func NewPageHandlers(service PageServices) *PageHandlers {
	return &PageHandlers{service: service}
}

func (h *PageHandlers) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.service.ListPages(r.Context())
	if err != nil {
		writeError(w, err, "list pages")
		return
	}
	httpx.JSON(w, http.StatusOK, pages)
}

func (h *PageHandlers) CreatePage(w http.ResponseWriter, r *http.Request) {
	payload, err := httpx.ReadBody[domains.PageCreate](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	page, err := h.service.CreatePage(r.Context(), payload)
	if err != nil {
		writeError(w, err, "create page")
		return
	}
	httpx.JSON(w, http.StatusCreated, page)
}

func (h *PageHandlers) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetPage(r.Context(), httpx.PathVar(r, "id"))
	if err != nil {
		writeError(w, err, "get page")
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *PageHandlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := httpx.ReadBody[domains.PageSettings](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	page, err := h.service.UpdateSettings(r.Context(), httpx.PathVar(r, "id"), settings)
	if err != nil {
		writeError(w, err, "update page")
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *PageHandlers) DeletePage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePage(r.Context(), httpx.PathVar(r, "id")); err != nil {
		writeError(w, err, "delete page")
		return
	}
	httpx.NoContent(w)
}

func (h *PageHandlers) AppendElement(w http.ResponseWriter, r *http.Request) {
	payload, err := httpx.ReadBody[AppendElementRequest](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	block, err := h.service.AppendElement(r.Context(), httpx.PathVar(r, "id"), payload.Type)
	if err != nil {
		writeError(w, err, "append element")
		return
	}
	httpx.JSON(w, http.StatusCreated, block)
}

// UpdateElement takes a partial content object as the body, e.g. {"headline": "New"}.
func (h *PageHandlers) UpdateElement(w http.ResponseWriter, r *http.Request) {
	patch, err := httpx.ReadBody[domains.ContentPatch](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	block, err := h.service.UpdateElementContent(r.Context(), httpx.PathVar(r, "id"), httpx.PathVar(r, "elementId"), patch)
	if err != nil {
		writeError(w, err, "update element")
		return
	}
	httpx.JSON(w, http.StatusOK, block)
}

func (h *PageHandlers) RemoveElement(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.RemoveElement(r.Context(), httpx.PathVar(r, "id"), httpx.PathVar(r, "elementId"))
	if err != nil {
		writeError(w, err, "remove element")
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *PageHandlers) Publish(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Publish(r.Context(), httpx.PathVar(r, "id"))
	if err != nil {
		writeError(w, err, "publish page")
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *PageHandlers) Unpublish(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Unpublish(r.Context(), httpx.PathVar(r, "id"))
	if err != nil {
		writeError(w, err, "unpublish page")
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *PageHandlers) Share(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.ShareURL(r.Context(), httpx.PathVar(r, "id"))
	if err != nil {
		writeError(w, err, "share page")
		return
	}
	httpx.JSON(w, http.StatusOK, ShareResponse{URL: url})
}
