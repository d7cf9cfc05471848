package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

type stockKey struct{ branch, product string }

// memStore base en memoria compartida por los repositorios falsos.
type memStore struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	branches  map[string]*entity.Branch
	suppliers map[string]*entity.Supplier
	products  map[string]*entity.Product
	users     map[string]*entity.User
	stock     map[stockKey]*entity.StockRecord
	purchases map[string]*entity.Purchase
	sales     map[string]*entity.Sale
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[string]*entity.Company{},
		branches:  map[string]*entity.Branch{},
		suppliers: map[string]*entity.Supplier{},
		products:  map[string]*entity.Product{},
		users:     map[string]*entity.User{},
		stock:     map[stockKey]*entity.StockRecord{},
		purchases: map[string]*entity.Purchase{},
		sales:     map[string]*entity.Sale{},
	}
}

func (s *memStore) stockOf(branchID, productID string) int {
	if r, ok := s.stock[stockKey{branchID, productID}]; ok {
		return r.Stock
	}
	return 0
}

// txRunner serializa las transacciones y restaura stock y cabeceras si fn falla.
type txRunner struct {
	store *memStore
	txMu  sync.Mutex
}

func (r *txRunner) Run(_ context.Context, fn func(repos inventory.TxRepos) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.store.mu.Lock()
	stockSnap := make(map[stockKey]entity.StockRecord, len(r.store.stock))
	for k, v := range r.store.stock {
		stockSnap[k] = *v
	}
	purchaseIDs := keys(r.store.purchases)
	saleIDs := keys(r.store.sales)
	r.store.mu.Unlock()

	err := fn(inventory.TxRepos{
		Stock:     &stockRepo{r.store},
		Purchases: &purchaseRepo{r.store},
		Sales:     &saleRepo{r.store},
	})
	if err == nil {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.stock = make(map[stockKey]*entity.StockRecord, len(stockSnap))
	for k, v := range stockSnap {
		rec := v
		r.store.stock[k] = &rec
	}
	for id := range r.store.purchases {
		if !purchaseIDs[id] {
			delete(r.store.purchases, id)
		}
	}
	for id := range r.store.sales {
		if !saleIDs[id] {
			delete(r.store.sales, id)
		}
	}
	return err
}

func keys[V any](m map[string]V) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

type stockRepo struct{ s *memStore }

func (r *stockRepo) Get(_ context.Context, branchID, productID string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.stock[stockKey{branchID, productID}]; ok {
		c := *rec
		return &c, nil
	}
	return nil, nil
}

func (r *stockRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.StockRecord, error) {
	return r.Get(ctx, branchID, productID)
}

func (r *stockRepo) LockOrCreate(_ context.Context, branchID, productID string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := stockKey{branchID, productID}
	rec, ok := r.s.stock[k]
	if !ok {
		rec = &entity.StockRecord{BranchID: branchID, ProductID: productID, ReorderPoint: entity.DefaultReorderPoint}
		r.s.stock[k] = rec
	}
	c := *rec
	return &c, nil
}

func (r *stockRepo) SetStock(_ context.Context, branchID, productID string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stock[stockKey{branchID, productID}].Stock = stock
	return nil
}

func (r *stockRepo) SetReorderPoint(ctx context.Context, branchID, productID string, reorderPoint int) (*entity.StockRecord, error) {
	if _, err := r.LockOrCreate(ctx, branchID, productID); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	r.s.stock[stockKey{branchID, productID}].ReorderPoint = reorderPoint
	r.s.mu.Unlock()
	return r.Get(ctx, branchID, productID)
}

func (r *stockRepo) ListByBranch(_ context.Context, branchID string) ([]repository.BranchStockRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.BranchStockRow
	for k, rec := range r.s.stock {
		if k.branch != branchID {
			continue
		}
		p := r.s.products[k.product]
		out = append(out, repository.BranchStockRow{ProductID: p.ID, SKU: p.SKU, ProductName: p.Name, Stock: rec.Stock, ReorderPoint: rec.ReorderPoint})
	}
	return out, nil
}

type purchaseRepo struct{ s *memStore }

func (r *purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.purchases[p.ID] = p
	return nil
}

func (r *purchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.purchases[id], nil
}

func (r *purchaseRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Purchase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Purchase
	for _, p := range r.s.purchases {
		if companyID == "" || p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type saleRepo struct{ s *memStore }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = sale
	return nil
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sales[id], nil
}

func (r *saleRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if companyID == "" || s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

type productRepo struct{ s *memStore }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.products[id], nil
}

func (r *productRepo) Update(ctx context.Context, p *entity.Product) error { return r.Create(ctx, p) }

func (r *productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *productRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if companyID == "" || p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type branchRepo struct{ s *memStore }

func (r *branchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.branches[b.ID] = b
	return nil
}

func (r *branchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.branches[id], nil
}

func (r *branchRepo) Update(ctx context.Context, b *entity.Branch) error { return r.Create(ctx, b) }

func (r *branchRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.branches, id)
	return nil
}

func (r *branchRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Branch
	for _, b := range r.s.branches {
		if companyID == "" || b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

type supplierRepo struct{ s *memStore }

func (r *supplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.suppliers[sp.ID] = sp
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.suppliers[id], nil
}

func (r *supplierRepo) Update(ctx context.Context, sp *entity.Supplier) error { return r.Create(ctx, sp) }

func (r *supplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}

func (r *supplierRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Supplier
	for _, sp := range r.s.suppliers {
		if companyID == "" || sp.CompanyID == companyID {
			out = append(out, sp)
		}
	}
	return out, nil
}

type companyRepo struct{ s *memStore }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.companies[c.ID] = c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.companies[id], nil
}

func (r *companyRepo) GetByRUT(_ context.Context, rut string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.RUT == rut {
			return c, nil
		}
	}
	return nil, nil
}

func (r *companyRepo) Update(ctx context.Context, c *entity.Company) error { return r.Create(ctx, c) }

func (r *companyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.s.companies {
		out = append(out, c)
	}
	return out, nil
}

type userRepo struct{ s *memStore }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.users[id], nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if companyID == "" || u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

// reportRepo devuelve filas fijas y registra el último filtro recibido.
type reportRepo struct {
	stockRows   []repository.StockReportRow
	salesRows   []repository.SalesReportRow
	below       []repository.ReplenishmentItem
	sold        map[string]int
	lastFilter  repository.SalesFilter
	lastCompany string
}

func (r *reportRepo) StockReport(_ context.Context, companyID string) ([]repository.StockReportRow, error) {
	r.lastCompany = companyID
	return r.stockRows, nil
}

func (r *reportRepo) SalesReport(_ context.Context, f repository.SalesFilter) ([]repository.SalesReportRow, error) {
	r.lastFilter = f
	return r.salesRows, nil
}

func (r *reportRepo) BelowReorderPoint(_ context.Context, companyID, _ string) ([]repository.ReplenishmentItem, error) {
	r.lastCompany = companyID
	return r.below, nil
}

func (r *reportRepo) UnitsSoldSince(_ context.Context, _ string, _ time.Time) (map[string]int, error) {
	return r.sold, nil
}

type fakeExporter struct{ got inventory.SalesBook }

func (e *fakeExporter) ExportSalesBook(_ context.Context, book inventory.SalesBook) ([]byte, error) {
	e.got = book
	return []byte("<LibroVentas/>"), nil
}

type fakeReceipts struct{ got inventory.ReceiptDocument }

func (f *fakeReceipts) RenderSaleReceipt(_ context.Context, doc inventory.ReceiptDocument) ([]byte, error) {
	f.got = doc
	return []byte("%PDF-1.4"), nil
}

// sortedIDs utilidad para comparar listados sin depender del orden del mapa.
func sortedIDs[T any](list []T, id func(T) string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, id(v))
	}
	sort.Strings(out)
	return out
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
