package inventory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// GetAvailableQuantity suma las cantidades no en cuarentena del producto.
func (uc *UseCase) GetAvailableQuantity(ctx context.Context, productID string) (int, error) {
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, domain.NotFound("producto", productID)
	}
	return uc.repos.Items.SumAvailable(ctx, productID)
}

// GetExpiredItems ítems cuyo vencimiento ya pasó.
func (uc *UseCase) GetExpiredItems(ctx context.Context) ([]*entity.InventoryItem, error) {
	return uc.repos.Items.ListExpiredBefore(ctx, uc.now())
}

// MaxExpiryWindowDays ventana máxima aceptada por GetItemsExpiringWithinDays (cien años).
const MaxExpiryWindowDays = 36500

// GetItemsExpiringWithinDays ítems que vencen entre ahora y ahora + days.
func (uc *UseCase) GetItemsExpiringWithinDays(ctx context.Context, days int) ([]*entity.InventoryItem, error) {
	if days < 0 || days > MaxExpiryWindowDays {
		return nil, domain.Invalid("days debe estar entre 0 y %d", MaxExpiryWindowDays)
	}
	now := uc.now()
	return uc.repos.Items.ListExpiringBetween(ctx, now, now.AddDate(0, 0, days))
}

// GetItem obtiene un ítem por ID.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.NotFound("ítem", id)
	}
	return it, nil
}

// ListByProduct ítems de un producto (incluye cuarentena).
func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryItem, error) {
	return uc.repos.Items.ListByProduct(ctx, productID)
}

// ListByLocation ítems de una ubicación.
func (uc *UseCase) ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryItem, error) {
	loc, err := uc.repos.Locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.NotFound("ubicación", locationID)
	}
	return uc.repos.Items.ListByLocation(ctx, locationID)
}

// StockByCategory stock disponible agregado por categoría de producto.
func (uc *UseCase) StockByCategory(ctx context.Context) ([]repository.CategoryStock, error) {
	return uc.repos.Products.StockByCategory(ctx)
}
