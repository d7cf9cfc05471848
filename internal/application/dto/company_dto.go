package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	RUT  string `json:"rut" validate:"required,min=2,max=20"`
}

// SubscribeRequest asocia un plan a la empresa.
type SubscribeRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	RUT                string    `json:"rut"`
	IsActive           bool      `json:"is_active"`
	PlanID             *string   `json:"plan_id,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
