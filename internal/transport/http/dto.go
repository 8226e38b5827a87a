package httptransport

import (
	"salesdash/internal/domains"
	"salesdash/internal/pricing"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AppendElementRequest struct {
	Type domains.BlockKind `json:"type"`
}

type ShareResponse struct {
	URL string `json:"url"`
}

// TotalsResponse renders money with two decimals, e.g. "326.99".
type TotalsResponse struct {
	Subtotal   string `json:"subtotal"`
	AddOnTotal string `json:"addOnTotal"`
	GrandTotal string `json:"grandTotal"`
}

func newTotalsResponse(t domains.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:   pricing.Format(t.Subtotal),
		AddOnTotal: pricing.Format(t.AddOnTotal),
		GrandTotal: pricing.Format(t.GrandTotal),
	}
}

type CheckoutPageResponse struct {
	Page       *domains.SalesPage `json:"page"`
	Product    domains.Product    `json:"product"`
	AddOnPrice string             `json:"addOnPrice"`
	Totals     TotalsResponse     `json:"totals"`
}

type CheckoutResponse struct {
	Order    domains.Order   `json:"order"`
	Totals   *TotalsResponse `json:"totals,omitempty"`
	Replayed bool            `json:"replayed"`
}
