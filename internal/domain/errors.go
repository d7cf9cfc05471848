package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrTxAborted          = errors.New("transacción abortada por concurrencia")
	ErrPlanNotFound       = &NotFoundError{Resource: "plan"}
)

// ValidationError agrupa errores por campo. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un error con un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Add registra un mensaje para el campo; conserva el primero si ya existía.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Empty informa si no hay errores acumulados.
func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

// OrNil devuelve el error sólo si tiene campos.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NotFoundError identifica el recurso que no se pudo resolver.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " no encontrado"
	}
	return fmt.Sprintf("%s %s no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	t, ok := target.(*NotFoundError)
	return ok && t.Resource == e.Resource && (t.ID == "" || t.ID == e.ID)
}

// NotFound atajo para construir un NotFoundError.
func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// InsufficientStockError se produce cuando una venta pide más de lo disponible en la sucursal.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Current     int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente (actual: %d) para %s.", e.Current, e.ProductName)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// Fields expone el error con la misma forma que ValidationError, bajo la llave "stock".
func (e *InsufficientStockError) Fields() map[string]string {
	return map[string]string{"stock": e.Error()}
}
