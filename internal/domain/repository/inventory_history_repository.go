package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// InventoryHistoryRepository puerto append-only del historial: no expone Update ni Delete.
type InventoryHistoryRepository interface {
	Create(ctx context.Context, h *entity.InventoryHistory) error
	// ListByProduct del más reciente al más antiguo; limit <= 0 devuelve todo.
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.InventoryHistory, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryHistory, error)
	ListByProductBetween(ctx context.Context, productID string, from, to time.Time) ([]*entity.InventoryHistory, error)
}
