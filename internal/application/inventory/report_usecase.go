package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// ReportUseCase lecturas de inventario y ventas; no modifica nada.
type ReportUseCase struct {
	reports   repository.ReportRepository
	companies repository.CompanyRepository
	exporter  SalesBookExporter
	loc       *time.Location
}

// NewReportUseCase construye el caso de uso. loc interpreta los filtros de fecha.
func NewReportUseCase(reports repository.ReportRepository, companies repository.CompanyRepository, exporter SalesBookExporter, loc *time.Location) *ReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportUseCase{reports: reports, companies: companies, exporter: exporter, loc: loc}
}

// StockReport existencias por sucursal y producto, ordenadas por sucursal y luego producto.
func (uc *ReportUseCase) StockReport(ctx context.Context, actor access.Actor) ([]dto.StockReportRow, error) {
	companyID, ok, err := uc.scope(actor)
	if err != nil || !ok {
		return []dto.StockReportRow{}, err
	}
	rows, err := uc.reports.StockReport(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockReportRow{
			Branch:       r.BranchName,
			SKU:          r.SKU,
			Name:         r.ProductName,
			Stock:        r.Stock,
			ReorderPoint: r.ReorderPoint,
		})
	}
	return out, nil
}

// SalesReport historial de ventas filtrado por rango de fechas (inclusivo) y sucursal,
// de la más reciente a la más antigua.
func (uc *ReportUseCase) SalesReport(ctx context.Context, actor access.Actor, q dto.SalesReportQuery) ([]dto.SalesReportRow, error) {
	rows, err := uc.salesRows(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesReportRow{
			SaleID:        r.SaleID,
			Branch:        r.BranchName,
			Total:         r.Total,
			Timestamp:     r.CreatedAt,
			Actor:         r.Username,
			PaymentMethod: r.PaymentMethod,
		})
	}
	return out, nil
}

// SalesBook exporta el libro de ventas del rango pedido.
func (uc *ReportUseCase) SalesBook(ctx context.Context, actor access.Actor, q dto.SalesReportQuery) ([]byte, error) {
	companyID, err := access.RequireTenant(actor)
	if err != nil {
		return nil, err
	}
	rows, err := uc.salesRows(ctx, actor, q)
	if err != nil {
		return nil, err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("empresa", companyID)
	}
	period := q.DateFrom
	if period == "" {
		period = time.Now().In(uc.loc).Format("2006-01")
	} else if len(period) >= 7 {
		period = period[:7]
	}
	return uc.exporter.ExportSalesBook(ctx, SalesBook{Company: company, Period: period, Rows: rows})
}

func (uc *ReportUseCase) salesRows(ctx context.Context, actor access.Actor, q dto.SalesReportQuery) ([]repository.SalesReportRow, error) {
	companyID, ok, err := uc.scope(actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []repository.SalesReportRow{}, nil
	}

	filter := repository.SalesFilter{CompanyID: companyID, BranchID: q.BranchID}
	verr := &domain.ValidationError{}
	if q.DateFrom != "" {
		d, err := time.ParseInLocation(dateLayout, q.DateFrom, uc.loc)
		if err != nil {
			verr.Add("date_from", "Formato de fecha inválido, use AAAA-MM-DD.")
		} else {
			filter.DateFrom = &d
		}
	}
	if q.DateTo != "" {
		d, err := time.ParseInLocation(dateLayout, q.DateTo, uc.loc)
		if err != nil {
			verr.Add("date_to", "Formato de fecha inválido, use AAAA-MM-DD.")
		} else {
			next := d.AddDate(0, 0, 1)
			filter.DateTo = &next
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return uc.reports.SalesReport(ctx, filter)
}

// scope aplica la matriz de roles y el aislamiento por empresa. ok=false: listado vacío.
func (uc *ReportUseCase) scope(actor access.Actor) (string, bool, error) {
	if err := access.Authorize(actor, access.OpViewReports); err != nil {
		return "", false, err
	}
	companyID, _, ok := access.ListScope(actor)
	if !ok || companyID == "" {
		return "", false, nil
	}
	return companyID, true, nil
}
