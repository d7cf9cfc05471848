package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido web.
const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
)

// Order pedido de la tienda en línea. No descuenta stock: no tiene sucursal asociada.
type Order struct {
	ID          string
	CompanyID   string
	UserID      *string
	ClientName  string
	ClientEmail string
	Status      string
	Total       decimal.Decimal
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem línea de pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// CanTransition valida el avance pending -> shipped -> delivered.
func CanTransition(from, to string) bool {
	switch from {
	case OrderPending:
		return to == OrderShipped
	case OrderShipped:
		return to == OrderDelivered
	}
	return false
}
