package entity

import "time"

// Branch sucursal física de una empresa.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
