package domains

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

type ProductType string

const (
	ProductDigital  ProductType = "digital"
	ProductPhysical ProductType = "physical"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        ProductType     `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Status      ProductStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ProductCreate struct {
	Name        string          `json:"name"`
	Type        ProductType     `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Status      ProductStatus   `json:"status"`
}

func (p Product) IsActive() bool {
	return p.Status == ProductActive
}
