package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra; el costo unitario lo informa quien registra.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest compra a proveedor. Date en formato YYYY-MM-DD; vacío = hoy.
type CreatePurchaseRequest struct {
	BranchID   string                `json:"branch_id" validate:"required"`
	SupplierID string                `json:"supplier_id" validate:"required"`
	Date       string                `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemRequest línea de venta. Price se ignora: se usa el precio del catálogo.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// CreateSaleRequest venta en caja. CreatedAt vacío = ahora.
type CreateSaleRequest struct {
	BranchID      string            `json:"branch_id" validate:"required"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash debit credit transfer"`
	CreatedAt     *time.Time        `json:"created_at,omitempty"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TransactionLineResponse línea persistida de compra o venta.
type TransactionLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra registrada.
type PurchaseResponse struct {
	ID         string                    `json:"id"`
	CompanyID  string                    `json:"company_id"`
	SupplierID string                    `json:"supplier_id"`
	BranchID   string                    `json:"branch_id"`
	UserID     string                    `json:"user_id"`
	Date       string                    `json:"date"`
	Total      decimal.Decimal           `json:"total"`
	Items      []TransactionLineResponse `json:"items"`
	CreatedAt  time.Time                 `json:"created_at"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID            string                    `json:"id"`
	CompanyID     string                    `json:"company_id"`
	BranchID      string                    `json:"branch_id"`
	UserID        string                    `json:"user_id"`
	PaymentMethod string                    `json:"payment_method"`
	Total         decimal.Decimal           `json:"total"`
	Items         []TransactionLineResponse `json:"items"`
	CreatedAt     time.Time                 `json:"created_at"`
}
