package order

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// GetByID obtiene un pedido con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("pedido", id)
	}
	return o, nil
}

// GetByNumber obtiene un pedido por número.
func (uc *UseCase) GetByNumber(ctx context.Context, number string) (*entity.Order, error) {
	o, err := uc.repos.Orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("pedido", number)
	}
	return o, nil
}

// List pedidos más recientes primero.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return uc.repos.Orders.List(ctx, limit, offset)
}

// Count total de pedidos registrados.
func (uc *UseCase) Count(ctx context.Context) (int, error) {
	return uc.repos.Orders.Count(ctx)
}

// ListByCustomer pedidos de un cliente.
func (uc *UseCase) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	return uc.repos.Orders.ListByCustomer(ctx, customerID)
}

// ListByStatus pedidos en un estado.
func (uc *UseCase) ListByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	return uc.repos.Orders.ListByStatus(ctx, status)
}

// ListByMinPriority pedidos con prioridad >= min, de mayor a menor prioridad.
func (uc *UseCase) ListByMinPriority(ctx context.Context, minPriority int) ([]*entity.Order, error) {
	if minPriority < 1 || minPriority > 5 {
		return nil, domain.Invalid("priority debe estar entre 1 y 5")
	}
	return uc.repos.Orders.ListByMinPriority(ctx, minPriority)
}
