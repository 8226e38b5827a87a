package domains

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

const (
	PaymentCreditCard = "credit_card"
	PaymentPayPal     = "paypal"
)

// Order amounts are frozen when the order is written.
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	ProductName   string          `json:"productName"`
	Amount        decimal.Decimal `json:"amount"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	CreatedAt     time.Time       `json:"createdAt"`
}
