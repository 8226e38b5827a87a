package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"salesdash/internal/domains"
	"salesdash/internal/httpx"
)

type AuthHandlers struct {
	service AuthServices
}

type AuthServices interface {
	Login(ctx context.Context, email string, password string) (string, string, error)
	Refresh(ctx context.Context, token string) (string, string, error)
	Me(ctx context.Context, merchantID string) (domains.Merchant, error)
	VerifyAccess(token string) (string, error)
}

func NewAuthHandlers(service AuthServices) *AuthHandlers {
	return &AuthHandlers{
		service: service,
	}
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	loginData, err := httpx.ReadBody[LoginData](r)
	if err != nil {
		badRequest(w, err)
		return
	}
	accessToken, refreshToken, err := h.service.Login(r.Context(), loginData.Email, loginData.Password)
	if err != nil {
		slog.Warn("login rejected", "email", loginData.Email)
		writeError(w, err, "login")
		return
	}
	setRefreshCookie(w, refreshToken)
	httpx.JSON(w, http.StatusOK, TokenPair{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Refresh accepts the refresh token from the refreshToken cookie or the request body.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		body, err := httpx.ReadBody[TokenRefreshRequest](r)
		if err == nil {
			token = body.RefreshToken
		}
	}
	if token == "" {
		httpx.Error(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	accessToken, refreshToken, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, err, "refresh")
		return
	}
	setRefreshCookie(w, refreshToken)
	httpx.JSON(w, http.StatusOK, TokenPair{AccessToken: accessToken, RefreshToken: refreshToken})
}

func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	merchantID, ok := httpx.MerchantIDFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	merchant, err := h.service.Me(r.Context(), merchantID)
	if err != nil {
		writeError(w, err, "me")
		return
	}
	httpx.JSON(w, http.StatusOK, merchant)
}

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    token,
		Path:     "/api/auth",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
