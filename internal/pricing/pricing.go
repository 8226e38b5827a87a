// Package pricing computes checkout totals for a product and the optional order bump.
package pricing

import (
	"salesdash/internal/domains"

	"github.com/shopspring/decimal"
)

// DefaultAddOnPrice is the order bump price used when configuration does not set one.
var DefaultAddOnPrice = decimal.RequireFromString("29.99")

type Engine struct {
	AddOnPrice decimal.Decimal
}

func NewEngine(addOnPrice decimal.Decimal) Engine {
	return Engine{AddOnPrice: addOnPrice}
}

// ComputeTotal is total for any non-negative product price.
func (e Engine) ComputeTotal(product domains.Product, addOnAccepted bool) domains.Totals {
	addOn := decimal.Zero
	if addOnAccepted {
		addOn = e.AddOnPrice
	}
	return domains.Totals{
		Subtotal:   product.Price,
		AddOnTotal: addOn,
		GrandTotal: product.Price.Add(addOn),
	}
}

// Format renders an amount with two decimal places, e.g. "326.99".
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
