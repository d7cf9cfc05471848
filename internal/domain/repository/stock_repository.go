package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// BranchStockRow existencias de una sucursal con datos del producto.
type BranchStockRow struct {
	ProductID    string
	SKU          string
	ProductName  string
	Stock        int
	ReorderPoint int
}

// StockRepository define el puerto para consultar/actualizar stock por sucursal+producto.
// Los métodos *ForUpdate y LockOrCreate sólo tienen sentido dentro de una transacción.
type StockRepository interface {
	// Get devuelve (nil, nil) si no hay registro.
	Get(ctx context.Context, branchID, productID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); (nil, nil) si no hay registro.
	GetForUpdate(ctx context.Context, branchID, productID string) (*entity.StockRecord, error)
	// LockOrCreate crea el registro en 0 si falta y lo devuelve bloqueado.
	LockOrCreate(ctx context.Context, branchID, productID string) (*entity.StockRecord, error)
	// SetStock escribe la cantidad de un registro ya bloqueado.
	SetStock(ctx context.Context, branchID, productID string, stock int) error
	SetReorderPoint(ctx context.Context, branchID, productID string, reorderPoint int) (*entity.StockRecord, error)
	ListByBranch(ctx context.Context, branchID string) ([]BranchStockRow, error)
}
