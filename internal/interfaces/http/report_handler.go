package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
)

// ReportHandler reportes de inventario y ventas.
type ReportHandler struct {
	reports       *inventory.ReportUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *inventory.ReportUseCase, replenishment *inventory.ReplenishmentUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, replenishment: replenishment}
}

// Stock godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockReportRow
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.reports.StockReport(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "Desde (AAAA-MM-DD, inclusive)"
// @Param        date_to    query  string  false  "Hasta (AAAA-MM-DD, inclusive)"
// @Param        branch_id  query  string  false  "Sucursal"
// @Success      200  {array}   dto.SalesReportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var q dto.SalesReportQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.SalesReport(c.UserContext(), GetActor(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesBook godoc
// @Summary      Libro de ventas en XML
// @Tags         reports
// @Security     Bearer
// @Produce      application/xml
// @Param        date_from  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        date_to    query  string  false  "Hasta (AAAA-MM-DD)"
// @Param        branch_id  query  string  false  "Sucursal"
// @Success      200  {file}    binary
// @Router       /api/reports/sales/book [get]
func (h *ReportHandler) SalesBook(c *fiber.Ctx) error {
	var q dto.SalesReportQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.SalesBook(c.UserContext(), GetActor(c), q)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=ISO-8859-1")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="libro-ventas.xml"`)
	return c.Send(out)
}

// Reorder godoc
// @Summary      Productos bajo punto de reorden con pedido sugerido
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  false  "Sucursal"
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/reports/reorder [get]
func (h *ReportHandler) Reorder(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), GetActor(c), c.Query("branch_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
