package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerifier map[string]string

func (v staticVerifier) VerifyAccess(token string) (string, error) {
	sub, ok := v[token]
	if !ok {
		return "", errors.New("bad token")
	}
	return sub, nil
}

func TestProtected(t *testing.T) {
	var seen string
	handler := Protected(staticVerifier{"good": "merchant"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = MerchantIDFromContext(r.Context())
		NoContent(w)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
	assert.Equal(t, "merchant", seen)
}

func TestReadBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	body, err := ReadBody[payload](req)
	require.NoError(t, err)
	assert.Equal(t, "x", body.Name)

	_, err = ReadBody[payload](httptest.NewRequest(http.MethodPost, "/", strings.NewReader("")))
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = ReadBody[payload](httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")))
	assert.Error(t, err)
}

func TestInvalidWritesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Invalid(rec, map[string]string{"email": "email is required"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":{"email":"email is required"}}`, rec.Body.String())
}

func TestLoggingRecovers(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
