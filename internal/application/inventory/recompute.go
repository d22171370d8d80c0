package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
)

// RecomputeProduct fija StockQuantity = suma de ítems no en cuarentena del producto.
func RecomputeProduct(ctx context.Context, r ports.Repos, productID string) error {
	available, err := r.Items.SumAvailable(ctx, productID)
	if err != nil {
		return err
	}
	return r.Products.UpdateStockQuantity(ctx, productID, available)
}

// RecomputeLocation fija CurrentWeight = Σ peso unitario × cantidad y Occupied = hay ítems.
func RecomputeLocation(ctx context.Context, r ports.Repos, locationID string) error {
	items, err := r.Items.ListByLocation(ctx, locationID)
	if err != nil {
		return err
	}
	weights := make(map[string]decimal.Decimal)
	for _, it := range items {
		if _, ok := weights[it.ProductID]; ok {
			continue
		}
		p, err := r.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p != nil {
			weights[it.ProductID] = p.Weight
		}
	}
	weight, occupied := inventory.LocationLoad(items, weights)
	return r.Locations.UpdateLoad(ctx, locationID, weight, occupied)
}

// lockItem lee el ítem, bloquea su producto y luego la fila del ítem, en el mismo orden
// que RemoveInventory (producto, ítems, ubicaciones).
func lockItem(ctx context.Context, r ports.Repos, itemID string) (*entity.InventoryItem, error) {
	snapshot, err := r.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, domain.NotFound("ítem", itemID)
	}
	if _, err := r.Products.GetForUpdate(ctx, snapshot.ProductID); err != nil {
		return nil, err
	}
	item, err := r.Items.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("ítem", itemID)
	}
	return item, nil
}

// lockProducts bloquea los productos en orden de ID y devuelve los que existen.
func lockProducts(ctx context.Context, r ports.Repos, ids ...string) (map[string]bool, error) {
	ordered := uniq(ids)
	sort.Strings(ordered)
	out := make(map[string]bool, len(ordered))
	for _, id := range ordered {
		p, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = p != nil
	}
	return out, nil
}

// lockLocations bloquea las ubicaciones en orden de ID para evitar interbloqueos.
// Las inexistentes quedan con valor nil en el mapa.
func lockLocations(ctx context.Context, r ports.Repos, ids ...string) (map[string]*entity.WarehouseLocation, error) {
	ordered := uniq(ids)
	sort.Strings(ordered)
	out := make(map[string]*entity.WarehouseLocation, len(ordered))
	for _, id := range ordered {
		loc, err := r.Locations.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = loc
	}
	return out, nil
}
