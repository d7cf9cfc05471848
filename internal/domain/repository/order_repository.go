package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia para pedidos web.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// ListByCompany con userID no vacío filtra los pedidos de ese cliente.
	ListByCompany(ctx context.Context, companyID, userID string, limit, offset int) ([]*entity.Order, error)
}
