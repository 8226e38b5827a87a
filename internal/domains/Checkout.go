package domains

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CheckoutForm mirrors the buyer form: contact, billing address and card.
type CheckoutForm struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
	Country    string `json:"country"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	Cvv        string `json:"cvv"`
	NameOnCard string `json:"nameOnCard"`
}

type CheckoutRequest struct {
	Form           CheckoutForm `json:"form"`
	AddOnAccepted  bool         `json:"addOnAccepted"`
	IdempotencyKey string       `json:"idempotencyKey,omitempty"`
}

// MissingFields returns a message per blank required field, keyed by its json name.
func (f CheckoutForm) MissingFields() map[string]string {
	required := []struct {
		name  string
		value string
	}{
		{"email", f.Email},
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zipCode", f.ZipCode},
		{"country", f.Country},
		{"cardNumber", f.CardNumber},
		{"expiryDate", f.ExpiryDate},
		{"cvv", f.Cvv},
		{"nameOnCard", f.NameOnCard},
	}
	missing := map[string]string{}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing[field.name] = field.name + " is required"
		}
	}
	return missing
}

func (f CheckoutForm) CustomerName() string {
	return strings.TrimSpace(strings.TrimSpace(f.FirstName) + " " + strings.TrimSpace(f.LastName))
}

type CheckoutView struct {
	Page       *SalesPage      `json:"page"`
	Product    Product         `json:"product"`
	AddOnPrice decimal.Decimal `json:"addOnPrice"`
}

// Totals is the pricing breakdown of one checkout. Formatting is left to callers.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	AddOnTotal decimal.Decimal `json:"addOnTotal"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// CheckoutResult carries Totals only for fresh orders; a replayed submission returns the stored order.
type CheckoutResult struct {
	Order    Order   `json:"order"`
	Totals   *Totals `json:"totals,omitempty"`
	Replayed bool    `json:"replayed"`
}
