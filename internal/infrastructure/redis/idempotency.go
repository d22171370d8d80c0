package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/wms-api/internal/application/ports"
)

const idempotencyKeyPrefix = "wms:idempotency:"

// Client subconjunto de *redis.Client usado por el almacén de idempotencia.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// IdempotencyStore reserva claves Idempotency-Key con SET NX y TTL.
type IdempotencyStore struct {
	client Client
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	c := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func NewIdempotencyStore(client Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Reserve devuelve true si la clave no existía.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, idempotencyKeyPrefix+key, 1, ttl).Result()
}

// Release libera la clave para permitir reintentos tras un fallo.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKeyPrefix+key).Err()
}
