package entity

import "time"

// Role nivel de capacidades de una cuenta.
type Role string

// Roles válidos para User.
const (
	RoleSystemOperator Role = "system_operator"
	RoleTenantOwner    Role = "tenant_owner"
	RoleManager        Role = "manager"
	RoleClerk          Role = "clerk"
	RoleEndCustomer    Role = "end_customer"
)

// Valid informa si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleSystemOperator, RoleTenantOwner, RoleManager, RoleClerk, RoleEndCustomer:
		return true
	}
	return false
}

// User cuenta del sistema. CompanyID sólo va vacío para el operador del sistema.
type User struct {
	ID           string
	CompanyID    string
	Username     string
	Email        string
	RUT          *string // opcional para end_customer
	PasswordHash string  // bcrypt
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
