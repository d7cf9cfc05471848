package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo planes de suscripción sobre PostgreSQL.
type PlanRepo struct {
	q Querier
}

func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

func scanPlan(row pgx.Row) (*entity.SubscriptionPlan, error) {
	var p entity.SubscriptionPlan
	if err := row.Scan(&p.ID, &p.Name, &p.MaxUsers, &p.Price, &p.Description); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepo) Create(ctx context.Context, p *entity.SubscriptionPlan) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO subscription_plans (id, name, max_users, price, description) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.MaxUsers, p.Price, p.Description,
	)
	if err != nil {
		return writeErr("insert plan", err)
	}
	return nil
}

func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.SubscriptionPlan, error) {
	p, err := scanPlan(r.q.QueryRow(ctx, `SELECT id, name, max_users, price, description FROM subscription_plans WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return p, nil
}

func (r *PlanRepo) GetByName(ctx context.Context, name string) (*entity.SubscriptionPlan, error) {
	p, err := scanPlan(r.q.QueryRow(ctx, `SELECT id, name, max_users, price, description FROM subscription_plans WHERE name = $1`, name))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan by name: %w", err)
	}
	return p, nil
}

// List ordena por precio ascendente (basic, standard, premium).
func (r *PlanRepo) List(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, max_users, price, description FROM subscription_plans ORDER BY price, name`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubscriptionPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
