package repository

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

// PlanRepository puerto de persistencia para SubscriptionPlan.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.SubscriptionPlan) error
	GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error)
	GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error)
	List(ctx context.Context) ([]*entity.SubscriptionPlan, error)
}
