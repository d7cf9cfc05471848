package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras (cabecera + líneas) sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository pasar la tx del ledger para que cabecera, líneas y stock confirmen juntos.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, company_id, supplier_id, branch_id, user_id, date, total, created_at`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.CompanyID, &p.SupplierID, &p.BranchID, &p.UserID, &p.Date, &p.Total, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.CompanyID, p.SupplierID, p.BranchID, p.UserID, p.Date, p.Total, p.CreatedAt,
	)
	if err != nil {
		return writeErr("insert purchase", err)
	}
	for _, it := range p.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_cost) VALUES ($1, $2, $3, $4, $5)`,
			it.ID, p.ID, it.ProductID, it.Quantity, it.UnitCost,
		)
		if err != nil {
			return writeErr("insert purchase item", err)
		}
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Purchase{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByCompany más recientes primero, con sus líneas.
func (r *PurchaseRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, error) {
	where, args := whereCompany("company_id", companyID, nil)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM purchases%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, purchaseColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PurchaseRepo) attachItems(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Purchase, len(purchases))
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, quantity, unit_cost
		FROM purchase_items WHERE purchase_id = ANY($1) ORDER BY purchase_id, id`, ids)
	if err != nil {
		return fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return fmt.Errorf("scan purchase item: %w", err)
		}
		if p := byID[it.PurchaseID]; p != nil {
			p.Items = append(p.Items, it)
		}
	}
	return rows.Err()
}
