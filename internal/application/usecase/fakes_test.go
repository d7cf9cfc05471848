package usecase_test

import (
	"context"
	"sync"

	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// Repositorios en memoria; cada uno guarda punteros tal cual los recibe.

type companyRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Company
}

func newCompanyRepo(cs ...*entity.Company) *companyRepo {
	r := &companyRepo{byID: map[string]*entity.Company{}}
	for _, c := range cs {
		r.byID[c.ID] = c
	}
	return r
}

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *companyRepo) GetByRUT(_ context.Context, rut string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.RUT == rut {
			return c, nil
		}
	}
	return nil, nil
}

func (r *companyRepo) Update(ctx context.Context, c *entity.Company) error { return r.Create(ctx, c) }

func (r *companyRepo) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Company, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

type planRepo struct{ byID map[string]*entity.SubscriptionPlan }

func (r *planRepo) Create(_ context.Context, p *entity.SubscriptionPlan) error {
	r.byID[p.ID] = p
	return nil
}

func (r *planRepo) GetByID(_ context.Context, id string) (*entity.SubscriptionPlan, error) {
	return r.byID[id], nil
}

func (r *planRepo) GetByName(_ context.Context, name string) (*entity.SubscriptionPlan, error) {
	for _, p := range r.byID {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (r *planRepo) List(_ context.Context) ([]*entity.SubscriptionPlan, error) {
	out := make([]*entity.SubscriptionPlan, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

type userRepo struct{ byID map[string]*entity.User }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.byID {
		if u.RUT != nil && existing.RUT != nil && *u.RUT == *existing.RUT {
			return domain.ErrDuplicate
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) { return r.byID[id], nil }

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		if companyID == "" || u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

type productRepo struct{ byID map[string]*entity.Product }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range r.byID {
		if existing.SKU == p.SKU && existing.ID != p.ID {
			return domain.ErrDuplicate
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.byID[id], nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *productRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *productRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if companyID == "" || p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type branchRepo struct{ byID map[string]*entity.Branch }

func (r *branchRepo) Create(_ context.Context, b *entity.Branch) error {
	r.byID[b.ID] = b
	return nil
}

func (r *branchRepo) GetByID(_ context.Context, id string) (*entity.Branch, error) {
	return r.byID[id], nil
}

func (r *branchRepo) Update(ctx context.Context, b *entity.Branch) error { return r.Create(ctx, b) }

func (r *branchRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *branchRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range r.byID {
		if companyID == "" || b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

type stockRepo struct {
	recs map[string]*entity.StockRecord
}

func key(branchID, productID string) string { return branchID + "/" + productID }

func (r *stockRepo) Get(_ context.Context, branchID, productID string) (*entity.StockRecord, error) {
	return r.recs[key(branchID, productID)], nil
}

func (r *stockRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.StockRecord, error) {
	return r.Get(ctx, branchID, productID)
}

func (r *stockRepo) LockOrCreate(_ context.Context, branchID, productID string) (*entity.StockRecord, error) {
	k := key(branchID, productID)
	if _, ok := r.recs[k]; !ok {
		r.recs[k] = &entity.StockRecord{BranchID: branchID, ProductID: productID, ReorderPoint: entity.DefaultReorderPoint}
	}
	return r.recs[k], nil
}

func (r *stockRepo) SetStock(_ context.Context, branchID, productID string, stock int) error {
	r.recs[key(branchID, productID)].Stock = stock
	return nil
}

func (r *stockRepo) SetReorderPoint(ctx context.Context, branchID, productID string, reorderPoint int) (*entity.StockRecord, error) {
	rec, _ := r.LockOrCreate(ctx, branchID, productID)
	rec.ReorderPoint = reorderPoint
	return rec, nil
}

func (r *stockRepo) ListByBranch(_ context.Context, branchID string) ([]repository.BranchStockRow, error) {
	var out []repository.BranchStockRow
	for _, rec := range r.recs {
		if rec.BranchID == branchID {
			out = append(out, repository.BranchStockRow{ProductID: rec.ProductID, Stock: rec.Stock, ReorderPoint: rec.ReorderPoint})
		}
	}
	return out, nil
}

type supplierRepo struct{ byID map[string]*entity.Supplier }

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.byID[s.ID] = s
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return r.byID[id], nil
}

func (r *supplierRepo) Update(ctx context.Context, s *entity.Supplier) error { return r.Create(ctx, s) }

func (r *supplierRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *supplierRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.byID {
		if companyID == "" || s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

type orderRepo struct{ byID map[string]*entity.Order }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.byID[o.ID] = o
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.byID[id], nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.byID[id].Status = status
	return nil
}

func (r *orderRepo) ListByCompany(_ context.Context, companyID, userID string, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.byID {
		if companyID != "" && o.CompanyID != companyID {
			continue
		}
		if userID != "" && (o.UserID == nil || *o.UserID != userID) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// ordersTx ejecuta fn con el repositorio de pedidos; no hay stock involucrado.
type ordersTx struct{ orders *orderRepo }

func (t ordersTx) Run(_ context.Context, fn func(repos inventory.TxRepos) error) error {
	return fn(inventory.TxRepos{Orders: t.orders})
}
