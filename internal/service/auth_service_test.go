package service

import (
	"context"
	"testing"
	"time"

	"salesdash/internal/domains"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(MerchantCredentials{
		Merchant:     domains.Merchant{FullName: "John Doe", Email: "john@example.com"},
		PasswordHash: string(hash),
	}, "test-secret")
}

func TestLoginIssuesTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	access, refresh, err := svc.Login(ctx, "John@Example.com", "s3cret")
	require.NoError(t, err)

	sub, err := svc.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "merchant", sub)

	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenIncorrect, "refresh token must not grant access")

	me, err := svc.Me(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", me.FullName)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "john@example.com", "wrong")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
	_, _, err = svc.Login(ctx, "someone@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestRefresh(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()
	access, refresh, err := svc.Login(ctx, "john@example.com", "s3cret")
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	_, _, err = svc.Refresh(ctx, access)
	assert.ErrorIs(t, err, ErrTokenIncorrect)
	_, _, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrTokenIncorrect)
}

func TestExpiredAndForeignTokens(t *testing.T) {
	svc := newAuthService(t)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	access, _, err := svc.GenerateTokens(domains.Merchant{ID: "merchant"})
	require.NoError(t, err)
	_, err = svc.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrTokenIncorrect)

	other := NewAuthService(MerchantCredentials{}, "other-secret")
	foreign, _, err := other.GenerateTokens(domains.Merchant{ID: "merchant"})
	require.NoError(t, err)
	_, err = newAuthService(t).VerifyAccess(foreign)
	assert.ErrorIs(t, err, ErrTokenIncorrect)
}
