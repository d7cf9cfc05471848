package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/domain/access"
	"github.com/jhoicas/temucosoft-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
	LocalActor     = "actor"
)

// ActorResolver carga la cuenta vigente a partir del ID del token. Lo implementa *auth.AuthUseCase.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (access.Actor, error)
}

// AuthMiddleware valida el Bearer Token JWT y carga el actor desde la base: rol, empresa y estado
// salen de la cuenta persistida, no de los claims.
func AuthMiddleware(jwtSecret string, resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		actor, err := resolver.ResolveActor(c.UserContext(), claims.UserID)
		if err != nil {
			log.Error().Err(err).Str("request_id", requestID(c)).Msg("resolver actor")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_UNAVAILABLE", Message: "no se pudo verificar la cuenta, intente más tarde"})
		}
		if !actor.Authenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "la cuenta ya no existe"})
		}
		if !actor.Active {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "ACCOUNT_INACTIVE", Message: "cuenta inactiva"})
		}
		c.Locals(LocalActor, actor)
		c.Locals(LocalUserID, actor.UserID)
		c.Locals(LocalCompanyID, actor.CompanyID)
		c.Locals(LocalRole, string(actor.Role))
		return c.Next()
	}
}

// RequireOperation corta la petición si el rol del actor no tiene ninguna de las operaciones.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireOperation(ops ...access.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := GetActor(c)
		var err error
		for _, op := range ops {
			if err = access.Authorize(actor, op); err == nil {
				return c.Next()
			}
		}
		return respondError(c, err)
	}
}

// GetActor devuelve el actor cargado por AuthMiddleware; vacío (no autenticado) si no hay.
func GetActor(c *fiber.Ctx) access.Actor {
	a, _ := c.Locals(LocalActor).(access.Actor)
	return a
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}

// GetRole devuelve el rol vigente del actor.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
