// Package access decide qué puede hacer una cuenta y sobre qué empresa.
//
// Todas las funciones son puras: reciben el Actor ya cargado (rol y estado frescos desde la
// base de datos) y no consultan nada. Las capas superiores traducen ErrUnauthorized a 401 y
// ErrForbidden a 403 antes de tocar cualquier dato.
package access

import (
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// Operation operación protegida.
type Operation string

const (
	OpManageTenants     Operation = "manage_tenants"
	OpCreateTenantOwner Operation = "create_tenant_owner"
	OpCreateStaff       Operation = "create_staff"
	OpManageCatalog     Operation = "manage_catalog"
	OpRecordPurchase    Operation = "record_purchase"
	OpRecordSale        Operation = "record_sale"
	OpViewReports       Operation = "view_reports"
	OpPlaceOrder        Operation = "place_order"
	OpManageOrders      Operation = "manage_orders"
)

// Actor quien ejecuta la operación.
type Actor struct {
	UserID        string
	CompanyID     string
	Role          entity.Role
	Active        bool
	Authenticated bool
}

// ActorFromUser construye el actor a partir de la cuenta persistida.
func ActorFromUser(u *entity.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{
		UserID:        u.ID,
		CompanyID:     u.CompanyID,
		Role:          u.Role,
		Active:        u.IsActive,
		Authenticated: true,
	}
}

// HasTenant informa si el actor pertenece a una empresa.
func (a Actor) HasTenant() bool { return a.CompanyID != "" }

// IsSystemOperator informa si el actor es el operador de la plataforma.
func (a Actor) IsSystemOperator() bool { return a.Role == entity.RoleSystemOperator }

var matrix = map[Operation]map[entity.Role]bool{
	OpManageTenants:     {entity.RoleSystemOperator: true},
	OpCreateTenantOwner: {entity.RoleSystemOperator: true},
	OpCreateStaff:       {entity.RoleTenantOwner: true},
	OpManageCatalog:     {entity.RoleTenantOwner: true, entity.RoleManager: true},
	OpRecordPurchase:    {entity.RoleManager: true},
	OpRecordSale:        {entity.RoleClerk: true},
	OpViewReports:       {entity.RoleTenantOwner: true, entity.RoleManager: true},
	OpPlaceOrder:        {entity.RoleTenantOwner: true, entity.RoleManager: true, entity.RoleClerk: true, entity.RoleEndCustomer: true},
	OpManageOrders:      {entity.RoleTenantOwner: true, entity.RoleManager: true},
}

// Permits evalúa sólo la matriz rol/operación.
func Permits(role entity.Role, op Operation) bool {
	return matrix[op][role]
}

// Authorize exige cuenta autenticada y activa, y que el rol tenga la operación.
func Authorize(a Actor, op Operation) error {
	if !a.Authenticated || !a.Active {
		return domain.ErrUnauthorized
	}
	if !Permits(a.Role, op) {
		return domain.ErrForbidden
	}
	return nil
}

// AuthorizeRead permite leer historial al operador del sistema (acceso global) o a quien tenga
// al menos una de las operaciones.
func AuthorizeRead(a Actor, ops ...Operation) error {
	if !a.Authenticated || !a.Active {
		return domain.ErrUnauthorized
	}
	if a.IsSystemOperator() {
		return nil
	}
	err := domain.ErrForbidden
	for _, op := range ops {
		if err = Authorize(a, op); err == nil {
			return nil
		}
	}
	return err
}

// CanAccess informa si el actor puede ver o modificar datos de la empresa indicada.
func CanAccess(a Actor, companyID string) bool {
	if !a.Authenticated || !a.Active {
		return false
	}
	if a.IsSystemOperator() {
		return true
	}
	return a.HasTenant() && a.CompanyID == companyID
}

// ListScope determina el alcance de un listado.
// all=true: sin filtro (operador del sistema). ok=false: el actor no tiene empresa y el
// listado debe devolverse vacío, sin error.
func ListScope(a Actor) (companyID string, all bool, ok bool) {
	if !a.Authenticated || !a.Active {
		return "", false, false
	}
	if a.IsSystemOperator() {
		return "", true, true
	}
	if !a.HasTenant() {
		return "", false, false
	}
	return a.CompanyID, false, true
}

// RequireTenant devuelve la empresa del actor o un error de validación si no tiene.
func RequireTenant(a Actor) (string, error) {
	if !a.HasTenant() {
		return "", domain.NewValidationError("company", "El usuario no tiene una empresa asociada.")
	}
	return a.CompanyID, nil
}

// CheckAccountCreation aplica las reglas de alta de cuentas:
// el operador del sistema sólo crea dueños de empresa (con empresa); el dueño sólo crea
// gerentes y vendedores de su propia empresa.
func CheckAccountCreation(creator Actor, target entity.Role, targetCompanyID string) error {
	if !creator.Authenticated || !creator.Active {
		return domain.ErrUnauthorized
	}
	switch creator.Role {
	case entity.RoleSystemOperator:
		if target != entity.RoleTenantOwner {
			return domain.NewValidationError("role", "El operador del sistema sólo puede crear dueños de empresa.")
		}
		if targetCompanyID == "" {
			return domain.NewValidationError("company", "Debe indicar la empresa del nuevo dueño.")
		}
		return nil
	case entity.RoleTenantOwner:
		if target != entity.RoleManager && target != entity.RoleClerk {
			return domain.NewValidationError("role", "Sólo puede crear gerentes o vendedores.")
		}
		if !creator.HasTenant() || targetCompanyID != creator.CompanyID {
			return domain.NewValidationError("company", "Sólo puede crear usuarios de su propia empresa.")
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}
