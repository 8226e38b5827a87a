package httptransport

import (
	"errors"
	"log/slog"
	"net/http"

	"salesdash/internal/domains"
	"salesdash/internal/httpx"
	"salesdash/internal/service"
	"salesdash/internal/storage"
)

// writeError maps service and storage errors onto status codes. Anything unknown is logged and hidden.
func writeError(w http.ResponseWriter, err error, action string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.Invalid(w, verr.Fields)
	case errors.Is(err, domains.ErrInvalidContentPatch):
		httpx.Invalid(w, map[string]string{"content": err.Error()})
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, domains.ErrElementNotFound):
		httpx.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrPageNotPublished), errors.Is(err, service.ErrPageHasNoProduct):
		httpx.Error(w, http.StatusNotFound, "checkout is not available")
	case errors.Is(err, service.ErrPaymentFailed):
		httpx.Error(w, http.StatusPaymentRequired, "payment failed, please try again")
	case errors.Is(err, service.ErrProductUnavailable):
		httpx.Error(w, http.StatusConflict, "product is not available")
	case errors.Is(err, service.ErrCheckoutInProgress), errors.Is(err, storage.ErrConflict):
		httpx.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPasswordIncorrect):
		httpx.Error(w, http.StatusUnauthorized, "email or password is incorrect")
	case errors.Is(err, service.ErrTokenIncorrect):
		httpx.Error(w, http.StatusUnauthorized, "token is incorrect")
	default:
		slog.Error(action+" failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func badRequest(w http.ResponseWriter, err error) {
	httpx.Error(w, http.StatusBadRequest, err.Error())
}
