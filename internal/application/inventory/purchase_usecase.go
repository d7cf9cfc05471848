package inventory

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

// PurchaseUseCase registra compras a proveedores: valida con TransactionBuilder y, en una sola
// transacción, suma stock (Ledger) y persiste cabecera y líneas con el total calculado.
type PurchaseUseCase struct {
	builder   *TransactionBuilder
	ledger    Ledger
	txRunner  TxRunner
	purchases repository.PurchaseRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(builder *TransactionBuilder, txRunner TxRunner, purchases repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{builder: builder, txRunner: txRunner, purchases: purchases}
}

// Record autoriza, valida y aplica la compra. Cualquier error revierte todo.
func (uc *PurchaseUseCase) Record(ctx context.Context, actor access.Actor, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := access.Authorize(actor, access.OpRecordPurchase); err != nil {
		return nil, err
	}
	draft, err := uc.builder.BuildPurchase(ctx, actor, in)
	if err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		CompanyID:  draft.CompanyID,
		SupplierID: draft.SupplierID,
		BranchID:   draft.BranchID,
		UserID:     draft.UserID,
		Date:       draft.Date,
		CreatedAt:  time.Now(),
	}
	for _, l := range draft.Lines {
		item := entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  l.Product.ID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
		}
		purchase.Items = append(purchase.Items, item)
	}

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		total, err := uc.ledger.ApplyPurchase(ctx, repos.Stock, draft.BranchID, draft.Lines)
		if err != nil {
			return err
		}
		purchase.Total = total
		return repos.Purchases.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// GetByID devuelve una compra visible para el actor.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.PurchaseResponse, error) {
	if err := access.AuthorizeRead(actor, access.OpViewReports, access.OpRecordPurchase); err != nil {
		return nil, err
	}
	p, err := uc.purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !access.CanAccess(actor, p.CompanyID) {
		return nil, domain.NotFound("compra", id)
	}
	return ToPurchaseResponse(p), nil
}

// List lista compras de la empresa del actor (todas para el operador del sistema).
func (uc *PurchaseUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	if err := access.AuthorizeRead(actor, access.OpViewReports, access.OpRecordPurchase); err != nil {
		return nil, err
	}
	companyID, _, ok := access.ListScope(actor)
	if !ok {
		return []dto.PurchaseResponse{}, nil
	}
	page.DefaultPage()
	list, err := uc.purchases.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToPurchaseResponse(p))
	}
	return out, nil
}

// ToPurchaseResponse mapea la entidad al DTO de salida.
func ToPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	items := make([]dto.TransactionLineResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.TransactionLineResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitCost,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.PurchaseResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		SupplierID: p.SupplierID,
		BranchID:   p.BranchID,
		UserID:     p.UserID,
		Date:       p.Date.Format(dateLayout),
		Total:      p.Total,
		Items:      items,
		CreatedAt:  p.CreatedAt,
	}
}
