package dto

import "github.com/shopspring/decimal"

// CreatePlanRequest entrada para crear un plan.
type CreatePlanRequest struct {
	Name        string          `json:"name" validate:"required,oneof=basic standard premium"`
	MaxUsers    int             `json:"max_users" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" validate:"max=500"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	MaxUsers    int             `json:"max_users"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}
