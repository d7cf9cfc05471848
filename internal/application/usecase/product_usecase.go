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

// ProductUseCase catálogo de productos de una empresa. El stock vive en las sucursales.
type ProductUseCase struct {
	repo      repository.ProductRepository
	companies repository.CompanyRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, companies repository.CompanyRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, companies: companies}
}

// Create agrega un producto al catálogo de la empresa del actor.
func (uc *ProductUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	companyID, err := access.RequireTenant(actor)
	if err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	if strings.TrimSpace(in.SKU) == "" {
		verr.Add("sku", "El SKU es obligatorio.")
	}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "El nombre es obligatorio.")
	}
	checkMoney(verr, "price", in.Price.IsNegative())
	checkMoney(verr, "cost", in.Cost.IsNegative())
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Cost:        in.Cost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto visible para el actor.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.ProductResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	p, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update modifica los campos enviados. El SKU no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	product, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	if in.Price != nil {
		checkMoney(verr, "price", in.Price.IsNegative())
	}
	if in.Cost != nil {
		checkMoney(verr, "cost", in.Cost.IsNegative())
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		verr.Add("name", "El nombre es obligatorio.")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto; si figura en compras o ventas el repositorio devuelve ErrConflict.
func (uc *ProductUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List productos de la empresa del actor; el operador del sistema ve todos.
func (uc *ProductUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	resp := &dto.ProductListResponse{Items: []dto.ProductResponse{}, Page: pageOf(page)}
	companyID, _, ok := access.ListScope(actor)
	if !ok {
		return resp, nil
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		resp.Items = append(resp.Items, *toProductResponse(p))
	}
	return resp, nil
}

// Catalog listado público de la tienda de una empresa activa (sin costos).
func (uc *ProductUseCase) Catalog(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.CatalogProductResponse, error) {
	if err := uc.activeShop(ctx, companyID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CatalogProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toCatalogProduct(p))
	}
	return out, nil
}

// CatalogItem detalle público de un producto; uno de otra empresa responde 404.
func (uc *ProductUseCase) CatalogItem(ctx context.Context, companyID, id string) (*dto.CatalogProductResponse, error) {
	if err := uc.activeShop(ctx, companyID); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.NotFound("producto", id)
	}
	out := toCatalogProduct(p)
	return &out, nil
}

func (uc *ProductUseCase) activeShop(ctx context.Context, companyID string) error {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil || !company.IsActive {
		return domain.NotFound("empresa", companyID)
	}
	return nil
}

func toCatalogProduct(p *entity.Product) dto.CatalogProductResponse {
	return dto.CatalogProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
	}
}

// load trata un producto de otra empresa igual que uno inexistente.
func (uc *ProductUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !access.CanAccess(actor, p.CompanyID) {
		return nil, domain.NotFound("producto", id)
	}
	return p, nil
}

func checkMoney(verr *domain.ValidationError, field string, negative bool) {
	if negative {
		verr.Add(field, "No puede ser negativo.")
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
