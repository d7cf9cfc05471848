package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase compra a proveedor que ingresa stock en una sucursal.
type Purchase struct {
	ID         string
	CompanyID  string
	SupplierID string
	BranchID   string
	UserID     string
	Date       time.Time // fecha calendario (hora 00:00 en la zona local)
	Total      decimal.Decimal
	Items      []PurchaseItem
	CreatedAt  time.Time
}

// PurchaseItem línea de compra; UnitCost lo informa quien registra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitCost   decimal.Decimal
}

// Subtotal cantidad * costo unitario.
func (i PurchaseItem) Subtotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
