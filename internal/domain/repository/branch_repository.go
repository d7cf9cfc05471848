package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// BranchRepository puerto de persistencia para sucursales.
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id string) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Branch, error)
}
