package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// SubscriptionUseCase asocia empresas a planes. MaxUsers del plan no limita el alta de cuentas.
type SubscriptionUseCase struct {
	companies repository.CompanyRepository
	plans     repository.PlanRepository
	now       func() time.Time
}

func NewSubscriptionUseCase(companies repository.CompanyRepository, plans repository.PlanRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{companies: companies, plans: plans, now: time.Now}
}

// Subscribe fija el plan de la empresa y deja la suscripción activa.
func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, actor access.Actor, companyID, planID string) (*dto.CompanyResponse, error) {
	if err := access.Authorize(actor, access.OpManageTenants); err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa", companyID)
	}
	if planID == "" {
		return nil, domain.NewValidationError("plan_id", "El plan es obligatorio.")
	}
	plan, err := uc.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	company.Subscribe(plan.ID, uc.now())
	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}
