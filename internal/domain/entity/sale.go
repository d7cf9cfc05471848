package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados en caja.
const (
	PaymentCash     = "cash"
	PaymentDebit    = "debit"
	PaymentCredit   = "credit"
	PaymentTransfer = "transfer"
)

// IsValidPaymentMethod informa si el medio de pago es uno de los aceptados.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer:
		return true
	}
	return false
}

// Sale venta en punto de venta; descuenta stock de la sucursal.
type Sale struct {
	ID            string
	CompanyID     string
	BranchID      string
	UserID        string
	PaymentMethod string
	Total         decimal.Decimal
	Items         []SaleItem
	CreatedAt     time.Time
}

// SaleItem línea de venta; Price se toma del catálogo al momento de vender.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal cantidad * precio.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
