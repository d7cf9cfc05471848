package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas (cabecera + líneas) sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, branch_id, user_id, payment_method, total, created_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.CompanyID, &s.BranchID, &s.UserID, &s.PaymentMethod, &s.Total, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.CompanyID, s.BranchID, s.UserID, s.PaymentMethod, s.Total, s.CreatedAt,
	)
	if err != nil {
		return writeErr("insert sale", err)
	}
	for _, it := range s.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, product_id, quantity, price) VALUES ($1, $2, $3, $4, $5)`,
			it.ID, s.ID, it.ProductID, it.Quantity, it.Price,
		)
		if err != nil {
			return writeErr("insert sale item", err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	where, args := whereCompany("company_id", companyID, nil)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM sales%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, saleColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Sale, error) {
		return scanSale(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SaleRepo) attachItems(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, price
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY sale_id, id`, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s := byID[it.SaleID]; s != nil {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}
