package domain

import (
	"errors"
	"fmt"
)

// Clases de error de dominio (sin dependencias externas).
// Los errores específicos envuelven una clase; la capa HTTP decide el status con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores específicos.
var (
	ErrDuplicate                = fmt.Errorf("%w: recurso duplicado", ErrConflict)
	ErrDuplicateOrderNumber     = fmt.Errorf("%w: número de pedido duplicado", ErrConflict)
	ErrInsufficientStock        = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrNoSuitableLocation       = fmt.Errorf("%w: no hay ubicación con capacidad disponible", ErrConflict)
	ErrQuantityExceedsAvailable = fmt.Errorf("%w: la cantidad supera la disponible en el ítem", ErrConflict)
	ErrInvalidTransition        = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
	ErrOrderNotCancelable       = fmt.Errorf("%w: el pedido no se puede cancelar", ErrConflict)
	ErrProductInUse             = fmt.Errorf("%w: el producto tiene inventario asociado", ErrConflict)
)

// Invalid construye un error de entrada inválida con detalle.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound construye un error de recurso inexistente con detalle.
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
