package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reportes (sólo lectura).
type ReportRepo struct {
	q Querier
}

func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// conds acumula condiciones AND con placeholders numerados.
type conds struct {
	parts []string
	args  []any
}

func (c *conds) add(expr string, v any) {
	c.args = append(c.args, v)
	c.parts = append(c.parts, fmt.Sprintf(expr, len(c.args)))
}

func (c *conds) where() string {
	if len(c.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.parts, " AND ")
}

// StockReport existencias por sucursal y producto; companyID vacío = todas las empresas.
func (r *ReportRepo) StockReport(ctx context.Context, companyID string) ([]repository.StockReportRow, error) {
	var c conds
	if companyID != "" {
		c.add("b.company_id = $%d", companyID)
	}
	query := `
		SELECT b.company_id, b.id, b.name, p.id, p.sku, p.name, s.stock, s.reorder_point
		FROM stock_records s
		JOIN branches b ON b.id = s.branch_id
		JOIN products p ON p.id = s.product_id` + c.where() + `
		ORDER BY b.name, p.name`
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}
	defer rows.Close()
	var list []repository.StockReportRow
	for rows.Next() {
		var row repository.StockReportRow
		if err := rows.Scan(&row.CompanyID, &row.BranchID, &row.BranchName, &row.ProductID, &row.SKU, &row.ProductName, &row.Stock, &row.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan stock report: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesReport ventas filtradas, más recientes primero.
func (r *ReportRepo) SalesReport(ctx context.Context, f repository.SalesFilter) ([]repository.SalesReportRow, error) {
	var c conds
	if f.CompanyID != "" {
		c.add("s.company_id = $%d", f.CompanyID)
	}
	if f.BranchID != "" {
		c.add("s.branch_id = $%d", f.BranchID)
	}
	if f.DateFrom != nil {
		c.add("s.created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		c.add("s.created_at < $%d", *f.DateTo)
	}
	query := `
		SELECT s.id, s.company_id, b.name, s.total, s.created_at, COALESCE(u.username, ''), s.payment_method
		FROM sales s
		JOIN branches b ON b.id = s.branch_id
		LEFT JOIN users u ON u.id = s.user_id` + c.where() + `
		ORDER BY s.created_at DESC`
	if f.Limit > 0 {
		c.args = append(c.args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(c.args))
	}
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("sales report: %w", err)
	}
	defer rows.Close()
	var list []repository.SalesReportRow
	for rows.Next() {
		var row repository.SalesReportRow
		if err := rows.Scan(&row.SaleID, &row.CompanyID, &row.BranchName, &row.Total, &row.CreatedAt, &row.Username, &row.PaymentMethod); err != nil {
			return nil, fmt.Errorf("scan sales report: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// BelowReorderPoint productos con stock estrictamente menor al umbral.
func (r *ReportRepo) BelowReorderPoint(ctx context.Context, companyID, branchID string) ([]repository.ReplenishmentItem, error) {
	c := conds{parts: []string{"s.stock < s.reorder_point"}}
	if companyID != "" {
		c.add("b.company_id = $%d", companyID)
	}
	if branchID != "" {
		c.add("s.branch_id = $%d", branchID)
	}
	query := `
		SELECT b.id, b.name, p.id, p.sku, p.name, s.stock, s.reorder_point, p.cost, p.price
		FROM stock_records s
		JOIN branches b ON b.id = s.branch_id
		JOIN products p ON p.id = s.product_id` + c.where() + `
		ORDER BY b.name, p.name`
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("below reorder point: %w", err)
	}
	defer rows.Close()
	var list []repository.ReplenishmentItem
	for rows.Next() {
		var it repository.ReplenishmentItem
		if err := rows.Scan(&it.BranchID, &it.BranchName, &it.ProductID, &it.SKU, &it.ProductName, &it.CurrentStock, &it.ReorderPoint, &it.UnitCost, &it.Price); err != nil {
			return nil, fmt.Errorf("scan replenishment item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UnitsSoldSince suma de unidades vendidas por producto desde since.
func (r *ReportRepo) UnitsSoldSince(ctx context.Context, companyID string, since time.Time) (map[string]int, error) {
	var c conds
	c.add("s.created_at >= $%d", since)
	if companyID != "" {
		c.add("s.company_id = $%d", companyID)
	}
	query := `
		SELECT si.product_id, COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id` + c.where() + `
		GROUP BY si.product_id`
	rows, err := r.q.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("units sold: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int)
	for rows.Next() {
		var productID string
		var units int64
		if err := rows.Scan(&productID, &units); err != nil {
			return nil, fmt.Errorf("scan units sold: %w", err)
		}
		out[productID] = int(units)
	}
	return out, rows.Err()
}
