package entity

import "github.com/shopspring/decimal"

// Niveles de plan.
const (
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)

// SubscriptionPlan plan de suscripción (dato de referencia).
// MaxUsers se informa pero no se aplica al crear cuentas.
type SubscriptionPlan struct {
	ID          string
	Name        string
	MaxUsers    int
	Price       decimal.Decimal
	Description string
}

// IsValidPlanName informa si el nombre es uno de los niveles conocidos.
func IsValidPlanName(name string) bool {
	switch name {
	case PlanBasic, PlanStandard, PlanPremium:
		return true
	}
	return false
}
