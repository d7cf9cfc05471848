package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/temucosoft-api/internal/domain"
)

// Querier lo implementan *pgxpool.Pool y pgx.Tx: los repositorios funcionan igual dentro o
// fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == "23505"
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila está referenciada (ON DELETE RESTRICT) o la referencia no existe.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isRetryable deadlock (40P01) o fallo de serialización (40001).
func isRetryable(err error) bool {
	switch pgCode(err) {
	case "40P01", "40001":
		return true
	}
	return false
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isMissing sin filas, o un ID que ni siquiera es un UUID válido (22P02).
func isMissing(err error) bool {
	return isNoRows(err) || pgCode(err) == "22P02"
}

// writeErr traduce violaciones de constraints a errores de dominio; el resto se envuelve con op.
func writeErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// whereCompany agrega el filtro por empresa salvo que companyID venga vacío (todas).
func whereCompany(column, companyID string, args []any) (string, []any) {
	if companyID == "" {
		return "", args
	}
	args = append(args, companyID)
	return " WHERE " + column + " = $" + strconv.Itoa(len(args)), args
}
