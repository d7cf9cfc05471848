// Package pdf genera la boleta de venta en PDF.
//
// Layout (ancho A4, una columna):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón social + RUT  │  BOLETA N° + Fecha           │
//	│  SUCURSAL: nombre / dirección / teléfono / cajero           │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                 │
//	│  TOTAL + medio de pago                                      │
//	│  FOOTER: QR con el ID de la venta                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var paymentLabels = map[string]string{
	entity.PaymentCash:     "Efectivo",
	entity.PaymentDebit:    "Débito",
	entity.PaymentCredit:   "Crédito",
	entity.PaymentTransfer: "Transferencia",
}

var _ inventory.ReceiptRenderer = (*ReceiptRenderer)(nil)

// ReceiptRenderer implementa inventory.ReceiptRenderer usando Maroto v2.
type ReceiptRenderer struct{}

// NewReceiptRenderer construye el generador.
func NewReceiptRenderer() *ReceiptRenderer { return &ReceiptRenderer{} }

// RenderSaleReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptRenderer) RenderSaleReceipt(_ context.Context, doc inventory.ReceiptDocument) ([]byte, error) {
	if doc.Company == nil || doc.Branch == nil || doc.Sale == nil {
		return nil, fmt.Errorf("pdf: boleta incompleta")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Boleta de venta", true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(branchRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(doc)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(doc.Sale))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc.Sale))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar boleta: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRow(doc inventory.ReceiptDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUT: "+doc.Company.RUT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BOLETA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(doc.Sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.Sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func branchRow(doc inventory.ReceiptDocument) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SUCURSAL "+strings.ToUpper(doc.Branch.Name), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Cajero: %s",
				nonEmpty(doc.Branch.Address, "-"),
				nonEmpty(doc.Branch.Phone, "-"),
				nonEmpty(doc.Cashier, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(doc inventory.ReceiptDocument) []core.Row {
	rows := make([]core.Row, 0, len(doc.Sale.Items))
	for _, it := range doc.Sale.Items {
		name := it.ProductID
		if p := doc.Products[it.ProductID]; p != nil {
			name = p.SKU + " " + p.Name
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(it.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalRow(s *entity.Sale) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Medio de pago: "+nonEmpty(paymentLabels[s.PaymentMethod], s.PaymentMethod), props.Text{
				Size: 9, Top: 2, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New(formatMoney(s.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

func footerRow(s *entity.Sale) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(s.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Venta "+s.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Gracias por su compra.", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return "N° " + strings.ToUpper(id[:8])
	}
	return "N° " + strings.ToUpper(id)
}

// formatMoney formato chileno: "$1.234" o "$1.234,50" si hay centavos.
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	out := sign + "$" + groupThousands(whole.StringFixed(0))
	if frac := d.Sub(whole); !frac.IsZero() {
		out += "," + d.StringFixed(2)[len(whole.StringFixed(0))+1:]
	}
	return out
}

// groupThousands inserta puntos de miles: "1000000" -> "1.000.000".
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
