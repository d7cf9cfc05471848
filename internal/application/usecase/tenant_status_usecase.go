package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/temucosoft-api/internal/domain/repository"
)

// TenantStatusService informa si una empresa puede operar. Es el único punto que decide
// si una empresa desactivada queda fuera del sistema.
type TenantStatusService struct {
	companyRepo repository.CompanyRepository
}

// NewTenantStatusService construye el servicio.
func NewTenantStatusService(companyRepo repository.CompanyRepository) *TenantStatusService {
	return &TenantStatusService{companyRepo: companyRepo}
}

// IsActive devuelve false (sin error) si la empresa no existe o está desactivada.
// Devuelve error sólo ante fallos de infraestructura.
func (s *TenantStatusService) IsActive(ctx context.Context, companyID string) (bool, error) {
	if companyID == "" {
		return false, fmt.Errorf("tenant status: companyID es obligatorio")
	}
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	return c != nil && c.IsActive, nil
}
