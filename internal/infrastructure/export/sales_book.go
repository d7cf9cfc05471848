// Package export serializa el libro de ventas mensual en XML (ISO-8859-1).
package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
)

var _ inventory.SalesBookExporter = (*SalesBookXML)(nil)

// AlgC14N algoritmo de canonicalización usado para el digest del detalle.
const AlgC14N = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"

// SalesBookXML implementa inventory.SalesBookExporter con etree.
type SalesBookXML struct {
	now func() time.Time
}

// NewSalesBookXML construye el exportador.
func NewSalesBookXML() *SalesBookXML {
	return &SalesBookXML{now: time.Now}
}

// ExportSalesBook arma <LibroVentas> con carátula, resumen y una <Venta> por fila.
func (x *SalesBookXML) ExportSalesBook(_ context.Context, book inventory.SalesBook) ([]byte, error) {
	if book.Company == nil {
		return nil, fmt.Errorf("export: libro sin empresa")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="ISO-8859-1"`)

	root := doc.CreateElement("LibroVentas")
	root.CreateAttr("periodo", book.Period)
	root.CreateAttr("generado", x.now().Format(time.RFC3339))

	caratula := root.CreateElement("Caratula")
	caratula.CreateElement("RutEmisor").SetText(book.Company.RUT)
	caratula.CreateElement("RazonSocial").SetText(book.Company.Name)
	caratula.CreateElement("Periodo").SetText(book.Period)

	total := decimal.Zero
	byPayment := map[string]decimal.Decimal{}
	var order []string
	for _, r := range book.Rows {
		total = total.Add(r.Total)
		if _, ok := byPayment[r.PaymentMethod]; !ok {
			order = append(order, r.PaymentMethod)
		}
		byPayment[r.PaymentMethod] = byPayment[r.PaymentMethod].Add(r.Total)
	}

	resumen := root.CreateElement("Resumen")
	resumen.CreateElement("TotalDocumentos").SetText(strconv.Itoa(len(book.Rows)))
	resumen.CreateElement("MontoTotal").SetText(total.StringFixed(2))
	for _, m := range order {
		mp := resumen.CreateElement("MedioPago")
		mp.CreateAttr("tipo", m)
		mp.SetText(byPayment[m].StringFixed(2))
	}

	detalle := root.CreateElement("Detalle")
	for _, r := range book.Rows {
		v := detalle.CreateElement("Venta")
		v.CreateAttr("id", r.SaleID)
		v.CreateElement("Fecha").SetText(r.CreatedAt.Format(time.RFC3339))
		v.CreateElement("Sucursal").SetText(r.BranchName)
		v.CreateElement("Cajero").SetText(r.Username)
		v.CreateElement("MedioPago").SetText(r.PaymentMethod)
		v.CreateElement("Monto").SetText(r.Total.StringFixed(2))
	}

	digest, err := detailDigest(detalle)
	if err != nil {
		return nil, err
	}
	integridad := root.CreateElement("Integridad")
	integridad.CreateAttr("algoritmo", AlgC14N)
	integridad.CreateElement("DigestValue").SetText(digest)

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("export: serializar libro: %w", err)
	}
	out, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("export: codificar ISO-8859-1: %w", err)
	}
	return out, nil
}

// detailDigest SHA-256 en base64 del <Detalle> canonicalizado. No depende de la fecha de
// generación, así dos exportaciones del mismo período sin cambios tienen el mismo digest.
func detailDigest(detalle *etree.Element) (string, error) {
	sub := etree.NewDocument()
	sub.SetRoot(detalle.Copy())
	raw, err := sub.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("export: serializar detalle: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("export: canonicalizar detalle: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
