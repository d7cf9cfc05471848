package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockReportRow fila del reporte de inventario (orden: sucursal, producto).
type StockReportRow struct {
	CompanyID    string
	BranchID     string
	BranchName   string
	ProductID    string
	SKU          string
	ProductName  string
	Stock        int
	ReorderPoint int
}

// SalesFilter filtros del reporte de ventas. CompanyID vacío = todas las empresas.
type SalesFilter struct {
	CompanyID string
	BranchID  string
	DateFrom  *time.Time // inclusive
	DateTo    *time.Time // exclusivo
	Limit     int
}

// SalesReportRow fila del reporte de ventas (orden: más reciente primero).
type SalesReportRow struct {
	SaleID        string
	CompanyID     string
	BranchName    string
	Total         decimal.Decimal
	CreatedAt     time.Time
	Username      string
	PaymentMethod string
}

// ReplenishmentItem producto bajo punto de reorden en una sucursal.
type ReplenishmentItem struct {
	BranchID     string
	BranchName   string
	ProductID    string
	SKU          string
	ProductName  string
	CurrentStock int
	ReorderPoint int
	UnitCost     decimal.Decimal
	Price        decimal.Decimal
}

// ReportRepository consultas de sólo lectura para reportes.
type ReportRepository interface {
	StockReport(ctx context.Context, companyID string) ([]StockReportRow, error)
	SalesReport(ctx context.Context, filter SalesFilter) ([]SalesReportRow, error)
	// BelowReorderPoint branchID vacío = todas las sucursales de la empresa.
	BelowReorderPoint(ctx context.Context, companyID, branchID string) ([]ReplenishmentItem, error)
	// UnitsSoldSince unidades vendidas por producto desde la fecha indicada.
	UnitsSoldSince(ctx context.Context, companyID string, since time.Time) (map[string]int, error)
}
