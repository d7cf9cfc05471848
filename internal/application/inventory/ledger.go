package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// MaxQuantity tope de cantidad por línea y de stock por registro (columna INTEGER).
const MaxQuantity = math.MaxInt32

// PurchaseLine línea validada de compra.
type PurchaseLine struct {
	Product  *entity.Product
	Quantity int
	UnitCost decimal.Decimal
}

// SaleLine línea validada de venta; el precio sale de Product.Price.
type SaleLine struct {
	Product  *entity.Product
	Quantity int
}

// Ledger aplica los efectos de compras y ventas sobre las existencias por sucursal.
// Debe ejecutarse con repositorios atados a una transacción (ver TxRunner): cada línea
// bloquea su fila de stock y las líneas se aplican en el orden recibido, de modo que dos
// líneas del mismo producto se acumulan sobre el mismo contador.
type Ledger struct{}

// ApplyPurchase suma stock por línea (creando el registro en 0 si no existe) y devuelve
// el total Σ cantidad × costo unitario.
func (Ledger) ApplyPurchase(ctx context.Context, stock repository.StockRepository, branchID string, lines []PurchaseLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range lines {
		if err := checkLine(i, l.Product, l.Quantity); err != nil {
			return decimal.Zero, err
		}
		if l.UnitCost.IsNegative() {
			return decimal.Zero, domain.NewValidationError(fmt.Sprintf("items[%d].unit_cost", i), "El costo unitario no puede ser negativo.")
		}

		rec, err := stock.LockOrCreate(ctx, branchID, l.Product.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if rec.Stock > MaxQuantity-l.Quantity {
			return decimal.Zero, domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "El stock resultante excede el máximo permitido.")
		}
		if err := stock.SetStock(ctx, branchID, l.Product.ID, rec.Stock+l.Quantity); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total, nil
}

// ApplySale descuenta stock por línea. Falla con *domain.InsufficientStockError si no hay
// registro para (sucursal, producto) o si el stock vigente no alcanza.
func (Ledger) ApplySale(ctx context.Context, stock repository.StockRepository, branchID string, lines []SaleLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range lines {
		if err := checkLine(i, l.Product, l.Quantity); err != nil {
			return decimal.Zero, err
		}

		rec, err := stock.GetForUpdate(ctx, branchID, l.Product.ID)
		if err != nil {
			return decimal.Zero, err
		}
		current := 0
		if rec != nil {
			current = rec.Stock
		}
		if rec == nil || current < l.Quantity {
			return decimal.Zero, &domain.InsufficientStockError{
				ProductID:   l.Product.ID,
				ProductName: l.Product.Name,
				Current:     current,
				Requested:   l.Quantity,
			}
		}
		if err := stock.SetStock(ctx, branchID, l.Product.ID, current-l.Quantity); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total, nil
}

func checkLine(i int, p *entity.Product, qty int) error {
	if p == nil {
		return domain.NotFound("producto", "")
	}
	if qty <= 0 {
		return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "La cantidad debe ser mayor a cero.")
	}
	if qty > MaxQuantity {
		return domain.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "La cantidad excede el máximo permitido.")
	}
	return nil
}
