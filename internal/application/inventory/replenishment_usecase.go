package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos cuyo stock en una sucursal
// está bajo su punto de reorden, priorizados por margen y rotación.
type ReplenishmentUseCase struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(reports repository.ReportRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reports: reports, now: time.Now}
}

// GenerateReplenishmentList devuelve los productos bajo punto de reorden con la cantidad
// sugerida de pedido. branchID vacío considera todas las sucursales de la empresa.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, actor access.Actor, branchID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	if err := access.Authorize(actor, access.OpViewReports); err != nil {
		return nil, err
	}
	companyID, _, ok := access.ListScope(actor)
	if !ok || companyID == "" {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	rawItems, err := uc.reports.BelowReorderPoint(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	sold, err := uc.reports.UnitsSoldSince(ctx, companyID, uc.now().AddDate(0, 0, -90))
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		// objetivo: 1.5 veces el punto de reorden, redondeado hacia arriba
		ideal := (item.ReorderPoint*3 + 1) / 2
		qty := ideal - item.CurrentStock
		if qty < 0 {
			qty = 0
		}

		var margin decimal.Decimal
		if item.Price.GreaterThan(decimal.Zero) {
			margin = item.Price.Sub(item.UnitCost).Div(item.Price).Mul(hundred).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			BranchID:            item.BranchID,
			Branch:              item.BranchName,
			ProductID:           item.ProductID,
			SKU:                 item.SKU,
			ProductName:         item.ProductName,
			CurrentStock:        item.CurrentStock,
			ReorderPoint:        item.ReorderPoint,
			SuggestedOrderQty:   qty,
			UnitCost:            item.UnitCost,
			EstimatedOrderCost:  item.UnitCost.Mul(decimal.NewFromInt(int64(qty))),
			GrossMarginPct:      margin,
			UnitsSoldLast90Days: sold[item.ProductID],
		})
	}

	// Mayor margen primero, luego mayor rotación y por último mayor déficit.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsSoldLast90Days != b.UnitsSoldLast90Days {
			return a.UnitsSoldLast90Days > b.UnitsSoldLast90Days
		}
		return a.ReorderPoint-a.CurrentStock > b.ReorderPoint-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
