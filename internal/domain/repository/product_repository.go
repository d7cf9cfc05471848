package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve domain.ErrConflict si el producto figura en compras o ventas.
	Delete(ctx context.Context, id string) error
	// ListByCompany con companyID vacío lista el catálogo de todas las empresas.
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
}
