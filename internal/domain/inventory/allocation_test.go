package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) *time.Time {
	t := time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFitsUnit_BordeExacto(t *testing.T) {
	loc := &entity.WarehouseLocation{MaxWeight: dec("10"), CurrentWeight: dec("9.5")}
	assert.True(t, inventory.FitsUnit(loc, dec("0.5")))
	assert.False(t, inventory.FitsUnit(loc, dec("0.51")))
}

func TestHasSpace_NoventaPorCiento(t *testing.T) {
	assert.True(t, inventory.HasSpace(&entity.WarehouseLocation{MaxWeight: dec("100"), CurrentWeight: dec("89.99")}))
	assert.False(t, inventory.HasSpace(&entity.WarehouseLocation{MaxWeight: dec("100"), CurrentWeight: dec("90")}))
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name         string
		loc          entity.WarehouseLocation
		holdsProduct bool
		want         bool
	}{
		{"ubicación con el producto y capacidad", entity.WarehouseLocation{Type: entity.LocationPicking, Occupied: true, MaxWeight: dec("10"), CurrentWeight: dec("2")}, true, true},
		{"ubicación con el producto llena", entity.WarehouseLocation{Type: entity.LocationPicking, Occupied: true, MaxWeight: dec("1"), CurrentWeight: dec("1")}, true, false},
		{"bulk libre", entity.WarehouseLocation{Type: entity.LocationBulkStorage, MaxWeight: dec("500")}, false, true},
		{"bulk ocupada por otro producto", entity.WarehouseLocation{Type: entity.LocationBulkStorage, Occupied: true, MaxWeight: dec("500"), CurrentWeight: dec("1")}, false, false},
		{"picking libre no es bulk", entity.WarehouseLocation{Type: entity.LocationPicking, MaxWeight: dec("500")}, false, false},
		{"bulk libre sin capacidad", entity.WarehouseLocation{Type: entity.LocationBulkStorage, MaxWeight: dec("0.1")}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.Eligible(&tt.loc, dec("0.5"), tt.holdsProduct))
		})
	}
}

func TestSortFEFO_SinVencimientoAlFinal(t *testing.T) {
	items := []*entity.InventoryItem{
		{ID: "none-old", CreatedAt: *day(1)},
		{ID: "jan10", ExpiryDate: day(10), CreatedAt: *day(2)},
		{ID: "jan05-b", ExpiryDate: day(5), CreatedAt: *day(4)},
		{ID: "jan05-a", ExpiryDate: day(5), CreatedAt: *day(3)},
	}
	inventory.SortFEFO(items)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"jan05-a", "jan05-b", "jan10", "none-old"}, ids)
}

func TestPlanRemoval_FEFOParcial(t *testing.T) {
	soon := &entity.InventoryItem{ID: "soon", Quantity: 3, ExpiryDate: day(5)}
	later := &entity.InventoryItem{ID: "later", Quantity: 10, ExpiryDate: day(20)}
	quarantined := &entity.InventoryItem{ID: "q", Quantity: 50, ExpiryDate: day(1), Quarantined: true}

	plan, err := inventory.PlanRemoval([]*entity.InventoryItem{later, quarantined, soon}, 5)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	assert.Equal(t, "soon", plan[0].Item.ID)
	assert.Equal(t, 3, plan[0].Quantity)
	assert.True(t, plan[0].Consumed)

	assert.Equal(t, "later", plan[1].Item.ID)
	assert.Equal(t, 2, plan[1].Quantity)
	assert.False(t, plan[1].Consumed)
}

func TestPlanRemoval_StockInsuficienteNoPlanifica(t *testing.T) {
	items := []*entity.InventoryItem{
		{ID: "a", Quantity: 2},
		{ID: "q", Quantity: 10, Quarantined: true},
	}
	plan, err := inventory.PlanRemoval(items, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, plan)
}

func TestPlanRemoval_CantidadInvalida(t *testing.T) {
	_, err := inventory.PlanRemoval(nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocationLoad(t *testing.T) {
	items := []*entity.InventoryItem{
		{ProductID: "p1", Quantity: 60},
		{ProductID: "p2", Quantity: 2},
	}
	w, occupied := inventory.LocationLoad(items, map[string]decimal.Decimal{"p1": dec("0.18"), "p2": dec("1.5")})
	assert.True(t, w.Equal(dec("13.8")), "peso = 60*0.18 + 2*1.5, got %s", w)
	assert.True(t, occupied)

	w, occupied = inventory.LocationLoad(nil, nil)
	assert.True(t, w.IsZero())
	assert.False(t, occupied)
}

func TestSummarizeByMonth(t *testing.T) {
	ts := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 12, 0, 0, 0, time.UTC) }
	history := []*entity.InventoryHistory{
		{ActionType: entity.ActionAdded, Quantity: 100, Timestamp: ts(3, 1)},
		{ActionType: entity.ActionRemoved, Quantity: 40, Timestamp: ts(3, 15)},
		{ActionType: entity.ActionMoved, Quantity: 20, Timestamp: ts(3, 16)},
		{ActionType: entity.ActionAdded, Quantity: 5, Timestamp: ts(5, 2)},
	}
	got := inventory.SummarizeByMonth(history)
	assert.Equal(t, []entity.MonthlySummary{
		{Month: "2025-05", Additions: 5},
		{Month: "2025-03", Additions: 100, Removals: 40},
	}, got)
}

func TestDefaultSummaryStart(t *testing.T) {
	now := time.Date(2025, 8, 17, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), inventory.DefaultSummaryStart(now))
}
