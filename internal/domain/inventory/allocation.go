package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// SpaceAvailableRatio fracción de MaxWeight bajo la cual una ubicación se lista "con espacio".
var SpaceAvailableRatio = decimal.RequireFromString("0.9")

// FitsUnit indica si la ubicación admite una unidad más del peso indicado.
// Regla de asignación automática: CurrentWeight + unitWeight <= MaxWeight.
func FitsUnit(loc *entity.WarehouseLocation, unitWeight decimal.Decimal) bool {
	return loc.CurrentWeight.Add(unitWeight).LessThanOrEqual(loc.MaxWeight)
}

// HasSpace indica si la ubicación está por debajo del 90% de su capacidad.
func HasSpace(loc *entity.WarehouseLocation) bool {
	return loc.CurrentWeight.LessThan(loc.MaxWeight.Mul(SpaceAvailableRatio))
}

// Eligible evalúa un candidato de la política de asignación automática.
// Primero se prueban las ubicaciones que ya contienen el producto (holdsProduct),
// luego las BULK_STORAGE desocupadas; en ambos casos debe caber una unidad más.
func Eligible(loc *entity.WarehouseLocation, unitWeight decimal.Decimal, holdsProduct bool) bool {
	if !holdsProduct && (loc.Type != entity.LocationBulkStorage || loc.Occupied) {
		return false
	}
	return FitsUnit(loc, unitWeight)
}

// SortFEFO ordena ítems "first expired, first out": vencimiento más próximo primero,
// sin vencimiento al final y empates por fecha de creación.
func SortFEFO(items []*entity.InventoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

// Take cantidad a retirar de un ítem. Consumed indica que el ítem queda en cero.
type Take struct {
	Item     *entity.InventoryItem
	Quantity int
	Consumed bool
}

// PlanRemoval reparte quantity sobre los ítems disponibles en orden FEFO.
// Si no alcanza devuelve ErrInsufficientStock sin plan parcial.
func PlanRemoval(items []*entity.InventoryItem, quantity int) ([]Take, error) {
	if quantity <= 0 {
		return nil, domain.Invalid("la cantidad debe ser positiva")
	}
	available := make([]*entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if !it.Quarantined && it.Quantity > 0 {
			available = append(available, it)
		}
	}
	if AvailableQuantity(available) < quantity {
		return nil, domain.ErrInsufficientStock
	}
	SortFEFO(available)

	var plan []Take
	remaining := quantity
	for _, it := range available {
		if remaining == 0 {
			break
		}
		n := it.Quantity
		if n > remaining {
			n = remaining
		}
		plan = append(plan, Take{Item: it, Quantity: n, Consumed: n == it.Quantity})
		remaining -= n
	}
	return plan, nil
}

// AvailableQuantity suma las cantidades de ítems no en cuarentena.
func AvailableQuantity(items []*entity.InventoryItem) int {
	total := 0
	for _, it := range items {
		if !it.Quarantined {
			total += it.Quantity
		}
	}
	return total
}

// LocationLoad calcula el peso actual y si la ubicación queda ocupada.
// unitWeights mapea ProductID -> peso unitario.
func LocationLoad(items []*entity.InventoryItem, unitWeights map[string]decimal.Decimal) (weight decimal.Decimal, occupied bool) {
	weight = decimal.Zero
	for _, it := range items {
		weight = weight.Add(unitWeights[it.ProductID].Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return weight, len(items) > 0
}

// SummarizeByMonth agrupa altas y bajas por mes (YYYY-MM), del más reciente al más antiguo.
func SummarizeByMonth(history []*entity.InventoryHistory) []entity.MonthlySummary {
	byMonth := make(map[string]*entity.MonthlySummary)
	for _, h := range history {
		key := h.Timestamp.UTC().Format("2006-01")
		s, ok := byMonth[key]
		if !ok {
			s = &entity.MonthlySummary{Month: key}
			byMonth[key] = s
		}
		switch h.ActionType {
		case entity.ActionAdded:
			s.Additions += h.Quantity
		case entity.ActionRemoved:
			s.Removals += h.Quantity
		}
	}
	out := make([]entity.MonthlySummary, 0, len(byMonth))
	for _, s := range byMonth {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// DefaultSummaryStart primer día del mes, seis meses antes de now.
func DefaultSummaryStart(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -6, 0)
}
