package entity

import "time"

// Estados de suscripción de una empresa.
const (
	SubscriptionInactive = "inactive"
	SubscriptionActive   = "active"
)

// Company representa una empresa cliente (tenant). Se desactiva, nunca se elimina.
type Company struct {
	ID                 string
	Name               string
	RUT                string  // forma canónica CUERPO-DV
	IsActive           bool
	PlanID             *string // nil = sin plan
	SubscriptionStatus string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Subscribe asocia el plan y deja la suscripción activa.
func (c *Company) Subscribe(planID string, now time.Time) {
	c.PlanID = &planID
	c.SubscriptionStatus = SubscriptionActive
	c.UpdatedAt = now
}
