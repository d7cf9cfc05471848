package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// PlanUseCase planes de suscripción.
type PlanUseCase struct {
	repo repository.PlanRepository
}

func NewPlanUseCase(repo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{repo: repo}
}

// Create registra un plan. Sólo el operador del sistema; el nombre es único.
func (uc *PlanUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := access.Authorize(actor, access.OpManageTenants); err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	if !entity.IsValidPlanName(in.Name) {
		verr.Add("name", "Plan desconocido: use basic, standard o premium.")
	}
	if in.MaxUsers <= 0 {
		verr.Add("max_users", "Debe ser mayor a cero.")
	}
	if in.Price.IsNegative() {
		verr.Add("price", "El precio no puede ser negativo.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	plan := &entity.SubscriptionPlan{
		ID:          uuid.New().String(),
		Name:        in.Name,
		MaxUsers:    in.MaxUsers,
		Price:       in.Price,
		Description: in.Description,
	}
	if err := uc.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return toPlanResponse(plan), nil
}

// List devuelve todos los planes a cualquier cuenta activa.
func (uc *PlanUseCase) List(ctx context.Context, actor access.Actor) ([]dto.PlanResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPlanResponse(p))
	}
	return out, nil
}

func toPlanResponse(p *entity.SubscriptionPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		MaxUsers:    p.MaxUsers,
		Price:       p.Price,
		Description: p.Description,
	}
}
