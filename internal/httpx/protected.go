package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const merchantIDContextKey contextKey = "merchantID"

type TokenVerifier interface {
	VerifyAccess(token string) (string, error)
}

// Protected rejects requests without a valid access token and stores its subject in the context.
func Protected(verifier TokenVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			sub, err := verifier.VerifyAccess(tokenString)
			if err != nil {
				Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := WithMerchantID(r.Context(), sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithMerchantID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, merchantIDContextKey, id)
}

func MerchantIDFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(merchantIDContextKey).(string)
	return sub, ok && sub != ""
}
