package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// CompanyUseCase alta, consulta y desactivación de empresas (tenants).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa activa sin plan. Devuelve domain.ErrDuplicate si el RUT ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := access.Authorize(actor, access.OpManageTenants); err != nil {
		return nil, err
	}
	canonical, err := cleanRUT(in.RUT)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByRUT(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		RUT:                canonical,
		IsActive:           true,
		SubscriptionStatus: entity.SubscriptionInactive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa visible para el actor.
func (uc *CompanyUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.CompanyResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil || !access.CanAccess(actor, company.ID) {
		return nil, domain.NotFound("empresa", id)
	}
	return toCompanyResponse(company), nil
}

// List el operador ve todas las empresas; el resto sólo la propia.
func (uc *CompanyUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	resp := &dto.CompanyListResponse{Items: []dto.CompanyResponse{}, Page: pageOf(page)}

	companyID, all, ok := access.ListScope(actor)
	if !ok {
		if !actor.Authenticated || !actor.Active {
			return nil, domain.ErrUnauthorized
		}
		return resp, nil
	}
	if !all {
		c, err := uc.repo.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if c != nil && page.Offset == 0 {
			resp.Items = append(resp.Items, *toCompanyResponse(c))
		}
		return resp, nil
	}

	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		resp.Items = append(resp.Items, *toCompanyResponse(c))
	}
	return resp, nil
}

// Deactivate desactiva la empresa; sus datos se conservan.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, actor access.Actor, id string) (*dto.CompanyResponse, error) {
	if err := access.Authorize(actor, access.OpManageTenants); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa", id)
	}
	company.IsActive = false
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		RUT:                c.RUT,
		IsActive:           c.IsActive,
		PlanID:             c.PlanID,
		SubscriptionStatus: c.SubscriptionStatus,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
