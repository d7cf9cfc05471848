package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia para compras (cabecera + líneas).
type PurchaseRepository interface {
	// Create inserta cabecera y líneas; debe llamarse dentro de la transacción del ledger.
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, error)
}
