package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo sucursales sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

const branchColumns = `id, company_id, name, address, phone, created_at, updated_at`

func scanBranch(row pgx.Row) (*entity.Branch, error) {
	var b entity.Branch
	if err := row.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepo) Create(ctx context.Context, b *entity.Branch) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO branches (`+branchColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.CompanyID, b.Name, b.Address, b.Phone, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return writeErr("insert branch", err)
	}
	return nil
}

func (r *BranchRepo) GetByID(ctx context.Context, id string) (*entity.Branch, error) {
	b, err := scanBranch(r.q.QueryRow(ctx, `SELECT `+branchColumns+` FROM branches WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	return b, nil
}

func (r *BranchRepo) Update(ctx context.Context, b *entity.Branch) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE branches SET name = $2, address = $3, phone = $4, updated_at = $5 WHERE id = $1`,
		b.ID, b.Name, b.Address, b.Phone, b.UpdatedAt,
	)
	if err != nil {
		return writeErr("update branch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("sucursal", b.ID)
	}
	return nil
}

// Delete con compras o ventas asociadas devuelve domain.ErrConflict.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete branch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("sucursal", id)
	}
	return nil
}

func (r *BranchRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Branch, error) {
	where, args := whereCompany("company_id", companyID, nil)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM branches%s ORDER BY name LIMIT $%d OFFSET $%d`, branchColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
