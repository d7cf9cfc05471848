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

// BranchUseCase sucursales y su inventario.
type BranchUseCase struct {
	repo     repository.BranchRepository
	stock    repository.StockRepository
	products repository.ProductRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository, stock repository.StockRepository, products repository.ProductRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo, stock: stock, products: products}
}

// Create crea una sucursal en la empresa del actor.
func (uc *BranchUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
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
	now := time.Now()
	branch := &entity.Branch{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal visible para el actor.
func (uc *BranchUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.BranchResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	b, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toBranchResponse(b), nil
}

// Update actualiza una sucursal.
func (uc *BranchUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	branch, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "El nombre es obligatorio.")
		}
		branch.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Phone != nil {
		branch.Phone = *in.Phone
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// Delete elimina una sucursal sin transacciones asociadas.
func (uc *BranchUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List sucursales de la empresa del actor.
func (uc *BranchUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) (*dto.BranchListResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	resp := &dto.BranchListResponse{Items: []dto.BranchResponse{}, Page: pageOf(page)}
	companyID, _, ok := access.ListScope(actor)
	if !ok {
		return resp, nil
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		resp.Items = append(resp.Items, *toBranchResponse(b))
	}
	return resp, nil
}

// Inventory existencias de la sucursal, producto por producto.
func (uc *BranchUseCase) Inventory(ctx context.Context, actor access.Actor, branchID string) ([]dto.StockResponse, error) {
	if !actor.Authenticated || !actor.Active {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uc.load(ctx, actor, branchID); err != nil {
		return nil, err
	}
	rows, err := uc.stock.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockResponse{
			BranchID:     branchID,
			ProductID:    r.ProductID,
			SKU:          r.SKU,
			Name:         r.ProductName,
			Stock:        r.Stock,
			ReorderPoint: r.ReorderPoint,
		})
	}
	return out, nil
}

// SetReorderPoint fija el umbral de reposición; crea el registro de stock en 0 si no existía.
func (uc *BranchUseCase) SetReorderPoint(ctx context.Context, actor access.Actor, branchID, productID string, in dto.SetReorderPointRequest) (*dto.StockResponse, error) {
	if err := access.Authorize(actor, access.OpManageCatalog); err != nil {
		return nil, err
	}
	if in.ReorderPoint == nil || *in.ReorderPoint < 0 {
		return nil, domain.NewValidationError("reorder_point", "Debe ser mayor o igual a cero.")
	}
	branch, err := uc.load(ctx, actor, branchID)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != branch.CompanyID {
		return nil, domain.NotFound("producto", productID)
	}
	rec, err := uc.stock.SetReorderPoint(ctx, branch.ID, product.ID, *in.ReorderPoint)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		BranchID:     rec.BranchID,
		ProductID:    rec.ProductID,
		SKU:          product.SKU,
		Name:         product.Name,
		Stock:        rec.Stock,
		ReorderPoint: rec.ReorderPoint,
	}, nil
}

func (uc *BranchUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.Branch, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil || !access.CanAccess(actor, b.CompanyID) {
		return nil, domain.NotFound("sucursal", id)
	}
	return b, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
	}
}
