package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// PurchaseDraft compra validada lista para el Ledger.
type PurchaseDraft struct {
	CompanyID  string
	BranchID   string
	SupplierID string
	UserID     string
	Date       time.Time
	Lines      []PurchaseLine
}

// SaleDraft venta validada lista para el Ledger.
type SaleDraft struct {
	CompanyID     string
	BranchID      string
	UserID        string
	PaymentMethod string
	CreatedAt     time.Time
	Lines         []SaleLine
}

// TransactionBuilder valida la entrada cruda de compras y ventas y resuelve cada referencia
// dentro de la empresa del actor. No escribe nada.
type TransactionBuilder struct {
	products  repository.ProductRepository
	branches  repository.BranchRepository
	suppliers repository.SupplierRepository
	loc       *time.Location
	now       func() time.Time
}

// NewTransactionBuilder construye el builder. loc define el "hoy" para las fechas de compra.
func NewTransactionBuilder(
	products repository.ProductRepository,
	branches repository.BranchRepository,
	suppliers repository.SupplierRepository,
	loc *time.Location,
) *TransactionBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionBuilder{
		products:  products,
		branches:  branches,
		suppliers: suppliers,
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (b *TransactionBuilder) WithClock(now func() time.Time) *TransactionBuilder {
	b.now = now
	return b
}

// BuildPurchase valida una compra: fecha no futura en la zona local, cantidades positivas,
// costos no negativos y sucursal, proveedor y productos de la empresa del actor.
func (b *TransactionBuilder) BuildPurchase(ctx context.Context, actor access.Actor, in dto.CreatePurchaseRequest) (*PurchaseDraft, error) {
	companyID, err := access.RequireTenant(actor)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	today := truncateDay(b.now().In(b.loc))
	date := today
	if in.Date != "" {
		d, err := time.ParseInLocation(dateLayout, in.Date, b.loc)
		switch {
		case err != nil:
			verr.Add("date", "Formato de fecha inválido, use AAAA-MM-DD.")
		case d.After(today):
			verr.Add("date", "La fecha de compra no puede ser futura.")
		default:
			date = d
		}
	}
	if in.BranchID == "" {
		verr.Add("branch_id", "La sucursal es obligatoria.")
	}
	if in.SupplierID == "" {
		verr.Add("supplier_id", "El proveedor es obligatorio.")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "Debe incluir al menos una línea.")
	}
	for i, it := range in.Items {
		checkItemFields(verr, i, it.ProductID, it.Quantity)
		if it.UnitCost.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].unit_cost", i), "El costo unitario no puede ser negativo.")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := b.resolveBranch(ctx, companyID, in.BranchID); err != nil {
		return nil, err
	}
	supplier, err := b.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.CompanyID != companyID {
		return nil, domain.NotFound("proveedor", in.SupplierID)
	}

	lines := make([]PurchaseLine, 0, len(in.Items))
	for _, it := range in.Items {
		p, err := b.resolveProduct(ctx, companyID, it.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, PurchaseLine{Product: p, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}

	return &PurchaseDraft{
		CompanyID:  companyID,
		BranchID:   in.BranchID,
		SupplierID: in.SupplierID,
		UserID:     actor.UserID,
		Date:       date,
		Lines:      lines,
	}, nil
}

// BuildSale valida una venta: fecha/hora no futura, medio de pago conocido, cantidades
// positivas y sucursal y productos de la empresa del actor. Cualquier precio enviado por el
// cliente se descarta.
func (b *TransactionBuilder) BuildSale(ctx context.Context, actor access.Actor, in dto.CreateSaleRequest) (*SaleDraft, error) {
	companyID, err := access.RequireTenant(actor)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	now := b.now()
	createdAt := now
	if in.CreatedAt != nil {
		if in.CreatedAt.After(now) {
			verr.Add("created_at", "La fecha de la venta no puede ser futura.")
		} else {
			createdAt = *in.CreatedAt
		}
	}
	if in.BranchID == "" {
		verr.Add("branch_id", "La sucursal es obligatoria.")
	}
	if !entity.IsValidPaymentMethod(in.PaymentMethod) {
		verr.Add("payment_method", "Medio de pago inválido.")
	}
	if len(in.Items) == 0 {
		verr.Add("items", "Debe incluir al menos una línea.")
	}
	for i, it := range in.Items {
		checkItemFields(verr, i, it.ProductID, it.Quantity)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := b.resolveBranch(ctx, companyID, in.BranchID); err != nil {
		return nil, err
	}

	lines := make([]SaleLine, 0, len(in.Items))
	for _, it := range in.Items {
		p, err := b.resolveProduct(ctx, companyID, it.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, SaleLine{Product: p, Quantity: it.Quantity})
	}

	return &SaleDraft{
		CompanyID:     companyID,
		BranchID:      in.BranchID,
		UserID:        actor.UserID,
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     createdAt,
		Lines:         lines,
	}, nil
}

func (b *TransactionBuilder) resolveBranch(ctx context.Context, companyID, branchID string) error {
	br, err := b.branches.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if br == nil || br.CompanyID != companyID {
		return domain.NotFound("sucursal", branchID)
	}
	return nil
}

// resolveProduct trata un producto de otra empresa igual que uno inexistente.
func (b *TransactionBuilder) resolveProduct(ctx context.Context, companyID, productID string) (*entity.Product, error) {
	p, err := b.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.NotFound("producto", productID)
	}
	return p, nil
}

func checkItemFields(verr *domain.ValidationError, i int, productID string, qty int) {
	if productID == "" {
		verr.Add(fmt.Sprintf("items[%d].product_id", i), "El producto es obligatorio.")
	}
	switch {
	case qty <= 0:
		verr.Add(fmt.Sprintf("items[%d].quantity", i), "La cantidad debe ser mayor a cero.")
	case qty > MaxQuantity:
		verr.Add(fmt.Sprintf("items[%d].quantity", i), "La cantidad excede el máximo permitido.")
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
