package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/pkg/telemetry"
)

const tracerName = "github.com/jhoicas/wms-api/internal/application/inventory"

// UseCase motor de reglas de inventario. Cada operación mutante corre en una transacción,
// bloquea producto y ubicaciones (SELECT FOR UPDATE), registra el historial y recalcula
// los campos derivados (stock del producto, peso y ocupación de ubicaciones) antes del Commit.
type UseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
	log   zerolog.Logger
	now   func() time.Time
}

// NewUseCase construye el motor. repos se usa para lecturas fuera de transacción.
func NewUseCase(tx ports.TxRunner, repos ports.Repos, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, repos: repos, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// AddInput entrada para dar de alta inventario. LocationID vacío activa la asignación automática.
type AddInput struct {
	ProductID   string
	Quantity    int
	LocationID  string
	BatchNumber string
	ExpiryDate  *time.Time
}

// AddInventory registra una nueva cantidad de producto en una ubicación.
func (uc *UseCase) AddInventory(ctx context.Context, in AddInput) (item *entity.InventoryItem, err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "inventory.AddInventory",
		attribute.String("product.id", in.ProductID), attribute.Int("quantity", in.Quantity))
	defer func() { telemetry.End(span, err) }()

	if in.ProductID == "" {
		return nil, domain.Invalid("product_id requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser positiva")
	}

	now := uc.now()
	actor := ports.ActorFrom(ctx)
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", in.ProductID)
		}

		var loc *entity.WarehouseLocation
		if in.LocationID != "" {
			loc, err = r.Locations.GetForUpdate(ctx, in.LocationID)
			if err != nil {
				return err
			}
			if loc == nil {
				return domain.NotFound("ubicación", in.LocationID)
			}
		} else {
			loc, err = uc.assignLocation(ctx, r, product)
			if err != nil {
				return err
			}
		}

		item = &entity.InventoryItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			LocationID:  loc.ID,
			Quantity:    in.Quantity,
			BatchNumber: in.BatchNumber,
			ExpiryDate:  in.ExpiryDate,
			CreatedAt:   now,
		}
		if err := r.Items.Create(ctx, item); err != nil {
			return err
		}
		if err := r.History.Create(ctx, &entity.InventoryHistory{
			ID:                    uuid.New().String(),
			ProductID:             product.ID,
			InventoryItemID:       item.ID,
			ActionType:            entity.ActionAdded,
			Quantity:              in.Quantity,
			DestinationLocationID: loc.ID,
			UserID:                actor.UserID,
			Username:              actor.Username,
			BatchNumber:           in.BatchNumber,
			Notes:                 "Alta inicial de inventario",
			Timestamp:             now,
		}); err != nil {
			return err
		}
		if err := RecomputeProduct(ctx, r, product.ID); err != nil {
			return err
		}
		return RecomputeLocation(ctx, r, loc.ID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("item_id", item.ID).Str("product_id", item.ProductID).
		Str("location_id", item.LocationID).Int("quantity", item.Quantity).Msg("inventario agregado")
	return item, nil
}

// assignLocation recorre candidatos (ubicaciones con el producto y luego BULK_STORAGE libres),
// bloquea los que califican y vuelve a evaluarlos sobre las filas bloqueadas.
func (uc *UseCase) assignLocation(ctx context.Context, r ports.Repos, product *entity.Product) (*entity.WarehouseLocation, error) {
	holding, err := r.Locations.ListHoldingProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	free, err := r.Locations.ListAvailableByType(ctx, entity.LocationBulkStorage)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		snapshot     *entity.WarehouseLocation
		holdsProduct bool
	}
	candidates := make([]candidate, 0, len(holding)+len(free))
	for _, l := range holding {
		candidates = append(candidates, candidate{l, true})
	}
	for _, l := range free {
		candidates = append(candidates, candidate{l, false})
	}

	// Solo se bloquean los candidatos que ya califican en la lectura previa, todos en orden
	// de ID como en lockLocations; la preferencia se aplica después sobre las filas bloqueadas.
	eligible := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if inventory.Eligible(c.snapshot, product.Weight, c.holdsProduct) {
			eligible = append(eligible, c.snapshot.ID)
		}
	}
	locked, err := lockLocations(ctx, r, eligible...)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		l := locked[c.snapshot.ID]
		if l != nil && inventory.Eligible(l, product.Weight, c.holdsProduct) {
			return l, nil
		}
	}
	return nil, domain.ErrNoSuitableLocation
}

// MoveInventory traslada quantity unidades de un ítem a otra ubicación.
// Traslado total: el ítem conserva su ID. Parcial: se crea un ítem nuevo en destino
// con el mismo lote, vencimiento y estado de cuarentena.
func (uc *UseCase) MoveInventory(ctx context.Context, itemID, newLocationID string, quantity int) (moved *entity.InventoryItem, err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "inventory.MoveInventory",
		attribute.String("item.id", itemID), attribute.String("location.id", newLocationID))
	defer func() { telemetry.End(span, err) }()

	if itemID == "" || newLocationID == "" {
		return nil, domain.Invalid("item y ubicación destino requeridos")
	}
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser positiva")
	}

	now := uc.now()
	actor := ports.ActorFrom(ctx)
	var source string
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		item, err := lockItem(ctx, r, itemID)
		if err != nil {
			return err
		}
		if item.LocationID == newLocationID {
			return domain.Invalid("la ubicación destino es la actual")
		}
		locked, err := lockLocations(ctx, r, item.LocationID, newLocationID)
		if err != nil {
			return err
		}
		if locked[newLocationID] == nil {
			return domain.NotFound("ubicación", newLocationID)
		}
		if quantity > item.Quantity {
			return domain.ErrQuantityExceedsAvailable
		}

		source = item.LocationID
		if quantity == item.Quantity {
			item.LocationID = newLocationID
			if err := r.Items.Update(ctx, item); err != nil {
				return err
			}
			moved = item
		} else {
			item.Quantity -= quantity
			if err := r.Items.Update(ctx, item); err != nil {
				return err
			}
			moved = &entity.InventoryItem{
				ID:          uuid.New().String(),
				ProductID:   item.ProductID,
				LocationID:  newLocationID,
				Quantity:    quantity,
				BatchNumber: item.BatchNumber,
				ExpiryDate:  item.ExpiryDate,
				Quarantined: item.Quarantined,
				CreatedAt:   now,
			}
			if err := r.Items.Create(ctx, moved); err != nil {
				return err
			}
		}

		if err := r.History.Create(ctx, &entity.InventoryHistory{
			ID:                    uuid.New().String(),
			ProductID:             item.ProductID,
			InventoryItemID:       moved.ID,
			ActionType:            entity.ActionMoved,
			Quantity:              quantity,
			SourceLocationID:      source,
			DestinationLocationID: newLocationID,
			UserID:                actor.UserID,
			Username:              actor.Username,
			BatchNumber:           item.BatchNumber,
			Notes:                 "Traslado entre ubicaciones",
			Timestamp:             now,
		}); err != nil {
			return err
		}
		if err := RecomputeLocation(ctx, r, source); err != nil {
			return err
		}
		return RecomputeLocation(ctx, r, newLocationID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("item_id", moved.ID).Str("from", source).Str("to", newLocationID).
		Int("quantity", quantity).Msg("inventario trasladado")
	return moved, nil
}

// RemovedLine detalle de lo retirado de un ítem.
type RemovedLine struct {
	ItemID     string
	LocationID string
	Quantity   int
	Consumed   bool
}

// RemoveInventory retira quantity unidades del producto en orden FEFO.
// Todo o nada: si el disponible no alcanza devuelve domain.ErrInsufficientStock sin modificar nada.
func (uc *UseCase) RemoveInventory(ctx context.Context, productID string, quantity int) (lines []RemovedLine, err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "inventory.RemoveInventory",
		attribute.String("product.id", productID), attribute.Int("quantity", quantity))
	defer func() { telemetry.End(span, err) }()

	if productID == "" {
		return nil, domain.Invalid("product_id requerido")
	}
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser positiva")
	}

	now := uc.now()
	actor := ports.ActorFrom(ctx)
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		lines = nil
		product, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", productID)
		}
		items, err := r.Items.ListAvailableForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		plan, err := inventory.PlanRemoval(items, quantity)
		if err != nil {
			return err
		}

		touched := make([]string, 0, len(plan))
		for _, take := range plan {
			touched = append(touched, take.Item.LocationID)
		}
		if _, err := lockLocations(ctx, r, touched...); err != nil {
			return err
		}

		for _, take := range plan {
			if take.Consumed {
				if err := r.Items.Delete(ctx, take.Item.ID); err != nil {
					return err
				}
			} else {
				take.Item.Quantity -= take.Quantity
				if err := r.Items.Update(ctx, take.Item); err != nil {
					return err
				}
			}
			if err := r.History.Create(ctx, &entity.InventoryHistory{
				ID:               uuid.New().String(),
				ProductID:        productID,
				InventoryItemID:  take.Item.ID,
				ActionType:       entity.ActionRemoved,
				Quantity:         take.Quantity,
				SourceLocationID: take.Item.LocationID,
				UserID:           actor.UserID,
				Username:         actor.Username,
				BatchNumber:      take.Item.BatchNumber,
				Notes:            "Salida de inventario (FEFO)",
				Timestamp:        now,
			}); err != nil {
				return err
			}
			lines = append(lines, RemovedLine{
				ItemID: take.Item.ID, LocationID: take.Item.LocationID, Quantity: take.Quantity, Consumed: take.Consumed,
			})
		}

		if err := RecomputeProduct(ctx, r, productID); err != nil {
			return err
		}
		for _, locID := range uniq(touched) {
			if err := RecomputeLocation(ctx, r, locID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", productID).Int("quantity", quantity).Int("items", len(lines)).Msg("inventario retirado")
	return lines, nil
}

// QuarantineInventory marca el ítem en cuarentena. Si ya lo estaba no registra historial.
func (uc *UseCase) QuarantineInventory(ctx context.Context, itemID string) (item *entity.InventoryItem, err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "inventory.QuarantineInventory", attribute.String("item.id", itemID))
	defer func() { telemetry.End(span, err) }()

	if itemID == "" {
		return nil, domain.Invalid("item requerido")
	}

	now := uc.now()
	actor := ports.ActorFrom(ctx)
	changed := false
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		item, err = lockItem(ctx, r, itemID)
		if err != nil {
			return err
		}
		if item.Quarantined {
			return nil
		}

		item.Quarantined = true
		if err := r.Items.Update(ctx, item); err != nil {
			return err
		}
		if err := r.History.Create(ctx, &entity.InventoryHistory{
			ID:               uuid.New().String(),
			ProductID:        item.ProductID,
			InventoryItemID:  item.ID,
			ActionType:       entity.ActionQuarantined,
			Quantity:         item.Quantity,
			SourceLocationID: item.LocationID,
			UserID:           actor.UserID,
			Username:         actor.Username,
			BatchNumber:      item.BatchNumber,
			Notes:            "Ítem puesto en cuarentena",
			Timestamp:        now,
		}); err != nil {
			return err
		}
		changed = true
		return RecomputeProduct(ctx, r, item.ProductID)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		uc.log.Warn().Str("item_id", item.ID).Str("product_id", item.ProductID).Msg("ítem en cuarentena")
	}
	return item, nil
}

// CycleCount registra un conteo físico de la ubicación: marca LastCountedAt en cada ítem
// y agrega una fila COUNTED por ítem. Las cantidades no cambian.
func (uc *UseCase) CycleCount(ctx context.Context, locationID string) (items []*entity.InventoryItem, err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "inventory.CycleCount", attribute.String("location.id", locationID))
	defer func() { telemetry.End(span, err) }()

	if locationID == "" {
		return nil, domain.Invalid("ubicación requerida")
	}

	now := uc.now()
	actor := ports.ActorFrom(ctx)
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		// Orden de bloqueo: productos, luego la ubicación. Los ítems quedan cubiertos por
		// el bloqueo de su producto.
		snapshot, err := r.Items.ListByLocation(ctx, locationID)
		if err != nil {
			return err
		}
		products := make([]string, 0, len(snapshot))
		for _, it := range snapshot {
			products = append(products, it.ProductID)
		}
		productLocked, err := lockProducts(ctx, r, products...)
		if err != nil {
			return err
		}
		loc, err := r.Locations.GetForUpdate(ctx, locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.NotFound("ubicación", locationID)
		}
		items, err = r.Items.ListByLocation(ctx, locationID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if !productLocked[it.ProductID] {
				return fmt.Errorf("%w: la ubicación %s cambió durante el conteo, reintente", domain.ErrConflict, loc.Code())
			}
		}
		for _, it := range items {
			counted := now
			it.LastCountedAt = &counted
			if err := r.Items.Update(ctx, it); err != nil {
				return err
			}
			if err := r.History.Create(ctx, &entity.InventoryHistory{
				ID:               uuid.New().String(),
				ProductID:        it.ProductID,
				InventoryItemID:  it.ID,
				ActionType:       entity.ActionCounted,
				Quantity:         it.Quantity,
				SourceLocationID: locationID,
				UserID:           actor.UserID,
				Username:         actor.Username,
				BatchNumber:      it.BatchNumber,
				Notes:            "Conteo cíclico",
				Timestamp:        now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("location_id", locationID).Int("items", len(items)).Msg("conteo cíclico registrado")
	return items, nil
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
