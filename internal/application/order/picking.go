package order

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
)

// PickingList hoja de preparación de un pedido: de qué ubicaciones tomar cada línea.
type PickingList struct {
	Order       *entity.Order
	Lines       []PickLine
	GeneratedAt time.Time
}

// PickLine línea de pedido con sus tomas sugeridas. Shortfall > 0 indica stock insuficiente hoy.
type PickLine struct {
	ProductID   string
	ProductSKU  string
	ProductName string
	Quantity    int
	Picks       []Pick
	Shortfall   int
}

// Pick toma sugerida desde una ubicación concreta.
type Pick struct {
	LocationID   string
	LocationCode string
	BatchNumber  string
	ExpiryDate   *time.Time
	Quantity     int
}

// PickingListRenderer convierte la hoja de preparación en un documento (PDF).
type PickingListRenderer interface {
	Render(list *PickingList) ([]byte, error)
}

// PickingList arma la hoja de preparación siguiendo FEFO sobre el stock disponible actual.
// No reserva ni descuenta inventario.
func (uc *UseCase) PickingList(ctx context.Context, orderID string) (*PickingList, error) {
	o, err := uc.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == entity.OrderCanceled {
		return nil, fmt.Errorf("%w: pedido cancelado", domain.ErrConflict)
	}

	locCodes := map[string]string{}
	list := &PickingList{Order: o, GeneratedAt: uc.now()}
	for _, line := range o.Items {
		items, err := uc.repos.Items.ListByProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		available := make([]*entity.InventoryItem, 0, len(items))
		for _, it := range items {
			if !it.Quarantined {
				available = append(available, it)
			}
		}
		inventory.SortFEFO(available)

		pl := PickLine{ProductID: line.ProductID, ProductSKU: line.ProductSKU, ProductName: line.ProductName, Quantity: line.Quantity}
		remaining := line.Quantity
		for _, it := range available {
			if remaining == 0 {
				break
			}
			n := min(it.Quantity, remaining)
			code, ok := locCodes[it.LocationID]
			if !ok {
				loc, err := uc.repos.Locations.GetByID(ctx, it.LocationID)
				if err != nil {
					return nil, err
				}
				if loc != nil {
					code = loc.Code()
				}
				locCodes[it.LocationID] = code
			}
			pl.Picks = append(pl.Picks, Pick{
				LocationID: it.LocationID, LocationCode: code, BatchNumber: it.BatchNumber,
				ExpiryDate: it.ExpiryDate, Quantity: n,
			})
			remaining -= n
		}
		pl.Shortfall = remaining
		list.Lines = append(list.Lines, pl)
	}
	return list, nil
}
