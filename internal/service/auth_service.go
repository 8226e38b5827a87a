package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"salesdash/internal/domains"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// MerchantCredentials is the configured dashboard login.
type MerchantCredentials struct {
	Merchant     domains.Merchant
	PasswordHash string
}

type AuthService struct {
	credentials MerchantCredentials
	secret      string
	now         func() time.Time
}

func NewAuthService(credentials MerchantCredentials, secret string) *AuthService {
	if credentials.Merchant.ID == "" {
		credentials.Merchant.ID = "merchant"
	}
	return &AuthService{
		credentials: credentials,
		secret:      secret,
		now:         time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (string, string, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.credentials.Merchant.Email) {
		return "", "", ErrPasswordIncorrect
	}
	err := bcrypt.CompareHashAndPassword([]byte(s.credentials.PasswordHash), []byte(password))
	if err != nil {
		return "", "", ErrPasswordIncorrect
	}

	accessToken, refreshToken, err := s.GenerateTokens(s.credentials.Merchant)
	if err != nil {
		slog.Error("auth: failed to generate tokens", "err", err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *AuthService) GenerateTokens(merchant domains.Merchant) (accessToken string, refreshToken string, err error) {
	now := s.now()
	accessToken, err = s.sign(merchant.ID, tokenTypeAccess, now.Add(accessTokenTTL))
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.sign(merchant.ID, tokenTypeRefresh, now.Add(refreshTokenTTL))
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sub, err := s.subject(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", "", err
	}
	if sub != s.credentials.Merchant.ID {
		return "", "", ErrTokenIncorrect
	}
	return s.GenerateTokens(s.credentials.Merchant)
}

func (s *AuthService) Me(ctx context.Context, merchantID string) (domains.Merchant, error) {
	if merchantID != s.credentials.Merchant.ID {
		return domains.Merchant{}, ErrTokenIncorrect
	}
	return s.credentials.Merchant, nil
}

// VerifyAccess returns the subject of a valid access token.
func (s *AuthService) VerifyAccess(token string) (string, error) {
	return s.subject(token, tokenTypeAccess)
}

func (s *AuthService) sign(sub, tokenType string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"exp":  expiresAt.Unix(),
		"type": tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *AuthService) subject(initToken string, tokenType string) (string, error) {
	token, err := jwt.Parse(initToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenIncorrect
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenIncorrect
	}
	if claims["type"] != tokenType {
		return "", ErrTokenIncorrect
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrTokenIncorrect
	}
	return sub, nil
}
