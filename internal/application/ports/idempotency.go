package ports

import (
	"context"
	"time"
)

// IdempotencyStore reserva claves de idempotencia de peticiones mutantes.
// Reserve devuelve false si la clave ya estaba reservada dentro del TTL.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
