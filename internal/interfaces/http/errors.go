package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/domain"
)

// conflictCodes códigos específicos para los 409; el primero que coincide gana.
var conflictCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{domain.ErrInvalidTransition, "INVALID_TRANSITION"},
	{domain.ErrOrderNotCancelable, "NOT_CANCELABLE"},
	{domain.ErrDuplicateOrderNumber, "DUPLICATE"},
	{domain.ErrDuplicate, "DUPLICATE"},
	{domain.ErrNoSuitableLocation, "NO_SUITABLE_LOCATION"},
	{domain.ErrQuantityExceedsAvailable, "QUANTITY_EXCEEDS_AVAILABLE"},
	{domain.ErrProductInUse, "PRODUCT_IN_USE"},
}

// writeError traduce errores de dominio a status HTTP y dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		code := "CONFLICT"
		for _, cc := range conflictCodes {
			if errors.Is(err, cc.err) {
				code = cc.code
				break
			}
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pathID lee un parámetro de ruta que debe ser UUID.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.Invalid("%s no es un UUID válido", name)
	}
	return id, nil
}

// bodyIDs valida los IDs leídos del cuerpo. Los vacíos pasan: el caso de uso decide si son obligatorios.
func bodyIDs(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		name, value := fields[i], fields[i+1]
		if value == "" {
			continue
		}
		if _, err := uuid.Parse(value); err != nil {
			return domain.Invalid("%s no es un UUID válido", name)
		}
	}
	return nil
}
