package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas (cabecera + líneas).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
}
