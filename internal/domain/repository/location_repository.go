package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para WarehouseLocation.
// Los listados se ordenan por pasillo, rack, estante y bin.
type LocationRepository interface {
	Create(ctx context.Context, loc *entity.WarehouseLocation) error
	GetByID(ctx context.Context, id string) (*entity.WarehouseLocation, error)
	// GetForUpdate bloquea la fila de la ubicación (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.WarehouseLocation, error)
	List(ctx context.Context) ([]*entity.WarehouseLocation, error)
	ListByType(ctx context.Context, t entity.LocationType) ([]*entity.WarehouseLocation, error)
	// ListAvailableByType ubicaciones desocupadas del tipo indicado.
	ListAvailableByType(ctx context.Context, t entity.LocationType) ([]*entity.WarehouseLocation, error)
	// ListWithSpace ubicaciones con CurrentWeight < ratio × MaxWeight.
	ListWithSpace(ctx context.Context, ratio decimal.Decimal) ([]*entity.WarehouseLocation, error)
	// ListHoldingProduct ubicaciones que contienen al menos un ítem del producto.
	ListHoldingProduct(ctx context.Context, productID string) ([]*entity.WarehouseLocation, error)
	UpdateLoad(ctx context.Context, id string, currentWeight decimal.Decimal, occupied bool) error
}
