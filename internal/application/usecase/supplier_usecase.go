package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// SupplierUseCase proveedores de la empresa; los gestiona dueño o gerente.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor con RUT válido.
func (uc *SupplierUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	companyID, err := access.RequireTenant(actor)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "El nombre es obligatorio.")
	}
	canonical, err := cleanRUT(in.RUT)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		RUT:       canonical,
		Contact:   in.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.SupplierResponse, error) {
	if err := access.AuthorizeRead(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update el RUT no se modifica.
func (uc *SupplierUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "El nombre es obligatorio.")
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Contact != nil {
		s.Contact = *in.Contact
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	if err := access.AuthorizeRead(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	page.DefaultPage()
	resp := &dto.SupplierListResponse{Items: []dto.SupplierResponse{}, Page: pageOf(page)}
	companyID, _, ok := access.ListScope(actor)
	if !ok {
		return resp, nil
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		resp.Items = append(resp.Items, *toSupplierResponse(s))
	}
	return resp, nil
}

func (uc *SupplierUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || !access.CanAccess(actor, s.CompanyID) {
		return nil, domain.NotFound("proveedor", id)
	}
	return s, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Name:      s.Name,
		RUT:       s.RUT,
		Contact:   s.Contact,
		CreatedAt: s.CreatedAt,
	}
}
