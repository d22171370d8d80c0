package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Los pedidos se devuelven con Items cargados.
type OrderRepository interface {
	// Create inserta el pedido y sus líneas. Número repetido -> domain.ErrDuplicateOrderNumber.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context) (int, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error)
	ListByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)
	// ListByMinPriority prioridad descendente y luego más recientes primero.
	ListByMinPriority(ctx context.Context, minPriority int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error
}
