package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/temucosoft-api/internal/domain"
	"github.com/jhoicas/temucosoft-api/internal/domain/entity"
	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `branch_id, product_id, stock, reorder_point, updated_at`

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	if err := row.Scan(&s.BranchID, &s.ProductID, &s.Stock, &s.ReorderPoint, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene el stock actual de un producto en una sucursal.
func (r *StockRepo) Get(ctx context.Context, branchID, productID string) (*entity.StockRecord, error) {
	s, err := scanStock(r.q.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock_records WHERE branch_id = $1 AND product_id = $2`,
		branchID, productID,
	))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila hasta el fin de la transacción.
func (r *StockRepo) GetForUpdate(ctx context.Context, branchID, productID string) (*entity.StockRecord, error) {
	s, err := scanStock(r.q.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock_records WHERE branch_id = $1 AND product_id = $2 FOR UPDATE`,
		branchID, productID,
	))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// LockOrCreate inserta el registro en 0 si falta y luego lo bloquea. Dos transacciones que
// crean el mismo registro a la vez terminan serializadas por la clave primaria.
func (r *StockRepo) LockOrCreate(ctx context.Context, branchID, productID string) (*entity.StockRecord, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_records (branch_id, product_id, stock, reorder_point, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (branch_id, product_id) DO NOTHING`,
		branchID, productID, entity.DefaultReorderPoint,
	)
	if err != nil {
		return nil, writeErr("create stock record", err)
	}
	s, err := r.GetForUpdate(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("lock stock record %s/%s: no encontrado tras insertar", branchID, productID)
	}
	return s, nil
}

// SetStock escribe la cantidad. CHECK (stock >= 0) rechaza negativos como último resguardo.
func (r *StockRepo) SetStock(ctx context.Context, branchID, productID string, stock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_records SET stock = $3, updated_at = now() WHERE branch_id = $1 AND product_id = $2`,
		branchID, productID, stock,
	)
	if err != nil {
		if pgCode(err) == "23514" {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("set stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("set stock %s/%s: registro inexistente", branchID, productID)
	}
	return nil
}

// SetReorderPoint fija el umbral creando el registro en 0 si no existía.
func (r *StockRepo) SetReorderPoint(ctx context.Context, branchID, productID string, reorderPoint int) (*entity.StockRecord, error) {
	s, err := scanStock(r.q.QueryRow(ctx, `
		INSERT INTO stock_records (branch_id, product_id, stock, reorder_point, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (branch_id, product_id)
		DO UPDATE SET reorder_point = EXCLUDED.reorder_point, updated_at = now()
		RETURNING `+stockColumns,
		branchID, productID, reorderPoint,
	))
	if err != nil {
		return nil, writeErr("set reorder point", err)
	}
	return s, nil
}

// ListByBranch existencias de la sucursal ordenadas por nombre de producto.
func (r *StockRepo) ListByBranch(ctx context.Context, branchID string) ([]repository.BranchStockRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.sku, p.name, s.stock, s.reorder_point
		FROM stock_records s
		JOIN products p ON p.id = s.product_id
		WHERE s.branch_id = $1
		ORDER BY p.name, p.sku`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list branch stock: %w", err)
	}
	defer rows.Close()
	var list []repository.BranchStockRow
	for rows.Next() {
		var row repository.BranchStockRow
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.ProductName, &row.Stock, &row.ReorderPoint); err != nil {
			return nil, fmt.Errorf("scan branch stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
