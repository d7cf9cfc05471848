package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de una empresa. Price y Cost son >= 0.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
