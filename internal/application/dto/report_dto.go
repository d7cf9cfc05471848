package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReportRow fila del reporte de inventario.
type StockReportRow struct {
	Branch       string `json:"branch"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	ReorderPoint int    `json:"reorder_point"`
}

// SalesReportQuery filtros del reporte de ventas (fechas YYYY-MM-DD, inclusivas).
type SalesReportQuery struct {
	DateFrom string `query:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `query:"date_to" validate:"omitempty,datetime=2006-01-02"`
	BranchID string `query:"branch_id"`
}

// SalesReportRow fila del reporte de ventas.
type SalesReportRow struct {
	SaleID        string          `json:"sale_id"`
	Branch        string          `json:"branch"`
	Total         decimal.Decimal `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
	Actor         string          `json:"actor"`
	PaymentMethod string          `json:"payment_method"`
}

// ReplenishmentSuggestionDTO producto bajo punto de reorden con pedido sugerido.
type ReplenishmentSuggestionDTO struct {
	Priority            int             `json:"priority"`
	BranchID            string          `json:"branch_id"`
	Branch              string          `json:"branch"`
	ProductID           string          `json:"product_id"`
	SKU                 string          `json:"sku"`
	ProductName         string          `json:"product_name"`
	CurrentStock        int             `json:"current_stock"`
	ReorderPoint        int             `json:"reorder_point"`
	SuggestedOrderQty   int             `json:"suggested_order_qty"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost  decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct      decimal.Decimal `json:"gross_margin_pct"`
	UnitsSoldLast90Days int             `json:"units_sold_last_90_days"`
}
