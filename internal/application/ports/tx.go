package ports

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Items     repository.InventoryItemRepository
	History   repository.InventoryHistoryRepository
	Orders    repository.OrderRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// Garantiza atomicidad de cada operación de los motores de inventario y pedidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
