package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/ports"
)

// HeaderIdempotencyKey header opcional de los POST.
const HeaderIdempotencyKey = "Idempotency-Key"

// IdempotencyMiddleware rechaza con 409 un POST que repite Idempotency-Key dentro del TTL.
// Si la petición falla (status >= 400) la clave se libera para permitir el reintento.
// Con el almacén caído la petición sigue sin protección.
func IdempotencyMiddleware(store ports.IdempotencyStore, ttl time.Duration, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if store == nil || key == "" || c.Method() != fiber.MethodPost {
			return c.Next()
		}
		key = c.Method() + " " + c.Path() + " " + key
		ctx := c.UserContext()

		ok, err := store.Reserve(ctx, key, ttl)
		if err != nil {
			log.Warn().Err(err).Msg("almacén de idempotencia no disponible")
			return c.Next()
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE_REQUEST", Message: "petición ya procesada con este Idempotency-Key",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if relErr := store.Release(ctx, key); relErr != nil {
				log.Warn().Err(relErr).Msg("liberar clave de idempotencia")
			}
		}
		return err
	}
}
