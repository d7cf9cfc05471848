package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/temucosoft-api/internal/application/dto"
	"github.com/jhoicas/temucosoft-api/internal/infrastructure/cache"
)

// HeaderIdempotencyKey cabecera con la clave elegida por el cliente.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay marca una respuesta repetida desde el almacén.
const HeaderIdempotentReplay = "Idempotent-Replayed"

// IdempotencyStore lo implementa *cache.IdempotencyStore.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Lookup(ctx context.Context, key string) (*cache.StoredResponse, error)
	Complete(ctx context.Context, key string, resp cache.StoredResponse) error
	Release(ctx context.Context, key string) error
}

// Idempotency repite la respuesta 2xx de la primera petición con la misma Idempotency-Key
// (por usuario y ruta). Sin cabecera la petición pasa tal cual. Si Redis falla, la petición
// se procesa sin protección y se registra una advertencia.
func Idempotency(store IdempotencyStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(HeaderIdempotencyKey)
		if header == "" {
			return c.Next()
		}
		if len(header) > 200 {
			return respondError(c, validationErr(HeaderIdempotencyKey, "Clave demasiado larga."))
		}
		ctx := c.UserContext()
		key := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + header

		ok, err := store.Reserve(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("request_id", requestID(c)).Msg("idempotency: reserva fallida, se procesa sin clave")
			return c.Next()
		}
		if !ok {
			prev, err := store.Lookup(ctx, key)
			if err != nil {
				return respondError(c, err)
			}
			if prev == nil || prev.Pending {
				return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
					Code: "IDEMPOTENCY_IN_PROGRESS", Message: "Hay una petición en curso con la misma Idempotency-Key.",
				})
			}
			c.Set(HeaderIdempotentReplay, "true")
			if prev.ContentType != "" {
				c.Set(fiber.HeaderContentType, prev.ContentType)
			}
			return c.Status(prev.Status).Send(prev.Body)
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, key)
			return err
		}
		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			if err := store.Release(ctx, key); err != nil {
				log.Warn().Err(err).Str("request_id", requestID(c)).Msg("idempotency: liberar clave")
			}
			return nil
		}
		resp := cache.StoredResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Complete(ctx, key, resp); err != nil {
			log.Warn().Err(err).Str("request_id", requestID(c)).Msg("idempotency: guardar respuesta")
		}
		return nil
	}
}
