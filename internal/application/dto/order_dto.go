package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea del carrito.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=2147483647"`
}

// CheckoutRequest confirmación del carrito.
type CheckoutRequest struct {
	ClientName  string             `json:"client_name" validate:"required,max=200"`
	ClientEmail string             `json:"client_email" validate:"required,email"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest avance de estado del pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shipped delivered"`
}

// OrderResponse pedido web.
type OrderResponse struct {
	ID          string                    `json:"id"`
	CompanyID   string                    `json:"company_id"`
	UserID      *string                   `json:"user_id,omitempty"`
	ClientName  string                    `json:"client_name"`
	ClientEmail string                    `json:"client_email"`
	Status      string                    `json:"status"`
	Total       decimal.Decimal           `json:"total"`
	Items       []TransactionLineResponse `json:"items"`
	CreatedAt   time.Time                 `json:"created_at"`
}
