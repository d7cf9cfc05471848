package entity

import "time"

// Supplier proveedor de una empresa; el RUT es único.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	RUT       string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
