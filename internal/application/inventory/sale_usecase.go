package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// SaleUseCase registra ventas en caja: descuenta stock y persiste la venta en una transacción.
type SaleUseCase struct {
	builder   *TransactionBuilder
	ledger    Ledger
	txRunner  TxRunner
	sales     repository.SaleRepository
	companies repository.CompanyRepository
	branches  repository.BranchRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	receipts  ReceiptRenderer
}

// SaleDeps dependencias de SaleUseCase.
type SaleDeps struct {
	Builder   *TransactionBuilder
	TxRunner  TxRunner
	Sales     repository.SaleRepository
	Companies repository.CompanyRepository
	Branches  repository.BranchRepository
	Products  repository.ProductRepository
	Users     repository.UserRepository
	Receipts  ReceiptRenderer
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(d SaleDeps) *SaleUseCase {
	return &SaleUseCase{
		builder:   d.Builder,
		txRunner:  d.TxRunner,
		sales:     d.Sales,
		companies: d.Companies,
		branches:  d.Branches,
		products:  d.Products,
		users:     d.Users,
		receipts:  d.Receipts,
	}
}

// Record autoriza, valida y aplica la venta. Si una línea no tiene stock suficiente
// no queda ningún descuento aplicado.
func (uc *SaleUseCase) Record(ctx context.Context, actor access.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := access.Authorize(actor, access.OpRecordSale); err != nil {
		return nil, err
	}
	draft, err := uc.builder.BuildSale(ctx, actor, in)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     draft.CompanyID,
		BranchID:      draft.BranchID,
		UserID:        draft.UserID,
		PaymentMethod: draft.PaymentMethod,
		CreatedAt:     draft.CreatedAt,
	}
	for _, l := range draft.Lines {
		item := entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		}
		sale.Items = append(sale.Items, item)
	}

	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		total, err := uc.ledger.ApplySale(ctx, repos.Stock, draft.BranchID, draft.Lines)
		if err != nil {
			return err
		}
		sale.Total = total
		return repos.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// GetByID devuelve una venta visible para el actor.
func (uc *SaleUseCase) GetByID(ctx context.Context, actor access.Actor, id string) (*dto.SaleResponse, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(s), nil
}

// List lista ventas de la empresa del actor.
func (uc *SaleUseCase) List(ctx context.Context, actor access.Actor, page dto.PageRequest) ([]dto.SaleResponse, error) {
	if err := access.AuthorizeRead(actor, access.OpViewReports, access.OpRecordSale); err != nil {
		return nil, err
	}
	companyID, _, ok := access.ListScope(actor)
	if !ok {
		return []dto.SaleResponse{}, nil
	}
	page.DefaultPage()
	list, err := uc.sales.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToSaleResponse(s))
	}
	return out, nil
}

// Receipt genera la boleta PDF de la venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, actor access.Actor, id string) ([]byte, error) {
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, s.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa", s.CompanyID)
	}
	branch, err := uc.branches.GetByID(ctx, s.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.NotFound("sucursal", s.BranchID)
	}
	products := make(map[string]*entity.Product, len(s.Items))
	for _, it := range s.Items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			products[it.ProductID] = p
		}
	}
	cashier := ""
	if u, err := uc.users.GetByID(ctx, s.UserID); err == nil && u != nil {
		cashier = u.Username
	}
	return uc.receipts.RenderSaleReceipt(ctx, ReceiptDocument{
		Company:  company,
		Branch:   branch,
		Sale:     s,
		Products: products,
		Cashier:  cashier,
	})
}

func (uc *SaleUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.Sale, error) {
	if err := access.AuthorizeRead(actor, access.OpViewReports, access.OpRecordSale); err != nil {
		return nil, err
	}
	s, err := uc.sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || !access.CanAccess(actor, s.CompanyID) {
		return nil, domain.NotFound("venta", id)
	}
	return s, nil
}

// ToSaleResponse mapea la entidad al DTO de salida.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.TransactionLineResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.TransactionLineResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		BranchID:      s.BranchID,
		UserID:        s.UserID,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		Items:         items,
		CreatedAt:     s.CreatedAt,
	}
}
