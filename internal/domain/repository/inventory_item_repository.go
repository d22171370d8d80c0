package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para InventoryItem.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// Update persiste cantidad, ubicación, cuarentena y fecha de conteo.
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryItem, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryItem, error)
	// ListAvailableForUpdate ítems no en cuarentena del producto, bloqueados para la transacción.
	ListAvailableForUpdate(ctx context.Context, productID string) ([]*entity.InventoryItem, error)
	SumAvailable(ctx context.Context, productID string) (int, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	ListExpiredBefore(ctx context.Context, t time.Time) ([]*entity.InventoryItem, error)
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.InventoryItem, error)
}
