package dto

import "time"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y datos del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RefreshRequest token a renovar.
type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

// CreateUserRequest alta de cuenta por un operador o dueño de empresa.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	RUT       string `json:"rut" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=tenant_owner manager clerk"`
	CompanyID string `json:"company_id"`
}

// RegisterCustomerRequest autorregistro de cliente final en la tienda de una empresa.
type RegisterCustomerRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	RUT       string `json:"rut"`
	CompanyID string `json:"company_id" validate:"required"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id,omitempty"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RUT       *string   `json:"rut,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
