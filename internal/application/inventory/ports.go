package inventory

import (
	"context"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Stock     repository.StockRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	Orders    repository.OrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo lo escrito (cabecera, líneas y stock).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// ReceiptRenderer genera la boleta de una venta (PDF).
type ReceiptRenderer interface {
	RenderSaleReceipt(ctx context.Context, doc ReceiptDocument) ([]byte, error)
}

// ReceiptDocument datos necesarios para imprimir la boleta.
type ReceiptDocument struct {
	Company  *entity.Company
	Branch   *entity.Branch
	Sale     *entity.Sale
	Products map[string]*entity.Product
	Cashier  string
}

// SalesBookExporter serializa el libro de ventas (XML).
type SalesBookExporter interface {
	ExportSalesBook(ctx context.Context, book SalesBook) ([]byte, error)
}

// SalesBook encabezado y filas del libro de ventas.
type SalesBook struct {
	Company *entity.Company
	Period  string
	Rows    []repository.SalesReportRow
}
