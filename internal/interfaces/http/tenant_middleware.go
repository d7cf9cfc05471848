package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
)

// tenantChecker es el contrato mínimo para verificar la empresa del actor.
// Lo implementa *usecase.TenantStatusService.
type tenantChecker interface {
	IsActive(ctx context.Context, companyID string) (bool, error)
}

// RequireActiveTenant deja fuera a las cuentas de una empresa desactivada. Debe usarse DESPUÉS
// de AuthMiddleware. Las cuentas sin empresa (operador del sistema) pasan.
//
//   - 403 Forbidden: empresa desactivada o inexistente.
//   - 503 Service Unavailable: fallo al consultar la base.
func RequireActiveTenant(checker tenantChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Next()
		}
		active, err := checker.IsActive(c.UserContext(), companyID)
		if err != nil {
			log.Error().Err(err).Str("request_id", requestID(c)).Str("company_id", companyID).Msg("verificar empresa")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "TENANT_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if !active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "TENANT_INACTIVE",
				Message: "la empresa está desactivada",
			})
		}
		return c.Next()
	}
}
