package entity

import "time"

// DefaultReorderPoint umbral de reposición cuando no se indica otro.
const DefaultReorderPoint = 5

// StockRecord existencias de un producto en una sucursal; (BranchID, ProductID) es único.
type StockRecord struct {
	BranchID     string
	ProductID    string
	Stock        int
	ReorderPoint int
	UpdatedAt    time.Time
}

// BelowReorderPoint informa si el stock está bajo el umbral de reposición.
func (s *StockRecord) BelowReorderPoint() bool {
	return s.Stock < s.ReorderPoint
}
