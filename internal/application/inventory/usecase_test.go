package inventory_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	repos ports.Repos
	uc    *appinv.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	repos := s.Repos()
	uc := appinv.NewUseCase(s, repos, zerolog.Nop()).WithClock(func() time.Time { return fixedNow })
	return &fixture{store: s, repos: repos, uc: uc}
}

func (f *fixture) product(t *testing.T, sku, weight string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID: uuid.New().String(), SKU: sku, Name: sku, Category: "Electronics",
		Weight: decimal.RequireFromString(weight), Width: decimal.NewFromInt(1),
		Height: decimal.NewFromInt(1), Depth: decimal.NewFromInt(1),
	}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	return p
}

func (f *fixture) location(t *testing.T, aisle string, typ entity.LocationType, maxWeight string) *entity.WarehouseLocation {
	t.Helper()
	l := &entity.WarehouseLocation{
		ID: uuid.New().String(), Aisle: aisle, Rack: "1", Shelf: "1", Bin: "1", Type: typ,
		MaxWeight: decimal.RequireFromString(maxWeight), CurrentWeight: decimal.Zero,
	}
	require.NoError(t, f.repos.Locations.Create(context.Background(), l))
	return l
}

func (f *fixture) reloadProduct(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.repos.Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) reloadLocation(t *testing.T, id string) *entity.WarehouseLocation {
	t.Helper()
	l, err := f.repos.Locations.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, l)
	return l
}

// assertStockInvariant stock cacheado == suma de ítems no en cuarentena.
func (f *fixture) assertStockInvariant(t *testing.T, productID string) {
	t.Helper()
	items, err := f.repos.Items.ListByProduct(context.Background(), productID)
	require.NoError(t, err)
	sum := 0
	for _, it := range items {
		if !it.Quarantined {
			sum += it.Quantity
		}
	}
	assert.Equal(t, sum, f.reloadProduct(t, productID).StockQuantity, "stock cacheado desalineado")
}

func TestAddInventory_UbicacionExplicitaRecalculaDerivados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "0.18")
	loc := f.location(t, "B", entity.LocationPicking, "200")

	item, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 100, LocationID: loc.ID, BatchNumber: "L-1"})
	require.NoError(t, err)

	assert.Equal(t, loc.ID, item.LocationID)
	assert.Equal(t, 100, f.reloadProduct(t, p.ID).StockQuantity)
	l := f.reloadLocation(t, loc.ID)
	assert.True(t, l.Occupied)
	assert.True(t, l.CurrentWeight.Equal(decimal.RequireFromString("18")), "peso %s", l.CurrentWeight)

	hist, err := f.repos.History.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.ActionAdded, hist[0].ActionType)
	assert.Equal(t, loc.ID, hist[0].DestinationLocationID)
	assert.Equal(t, "L-1", hist[0].BatchNumber)
}

func TestAddInventory_AsignacionAutomatica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "1")
	other := f.product(t, "HOME001", "1")

	occupiedBulk := f.location(t, "A", entity.LocationBulkStorage, "500")
	freeBulk := f.location(t, "C", entity.LocationBulkStorage, "500")
	picking := f.location(t, "B", entity.LocationPicking, "500")

	_, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: other.ID, Quantity: 1, LocationID: occupiedBulk.ID})
	require.NoError(t, err)

	// Sin ubicaciones con el producto: primera BULK_STORAGE desocupada.
	first, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, freeBulk.ID, first.LocationID)

	// Con el producto en PICKING, se prefiere esa ubicación.
	_, err = f.uc.MoveInventory(ctx, first.ID, picking.ID, 5)
	require.NoError(t, err)
	second, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, picking.ID, second.LocationID)
}

func TestAddInventory_SinUbicacionAdecuada(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "HEAVY", "600")
	f.location(t, "A", entity.LocationBulkStorage, "500")

	_, err := f.uc.AddInventory(context.Background(), appinv.AddInput{ProductID: p.ID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNoSuitableLocation)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAddInventory_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "1")

	_, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.AddInventory(ctx, appinv.AddInput{ProductID: "no-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 1, LocationID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMoveInventory_TotalConservaID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "2")
	src := f.location(t, "A", entity.LocationBulkStorage, "500")
	dst := f.location(t, "B", entity.LocationPicking, "200")

	item, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 10, LocationID: src.ID})
	require.NoError(t, err)

	moved, err := f.uc.MoveInventory(ctx, item.ID, dst.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, item.ID, moved.ID)
	assert.Equal(t, dst.ID, moved.LocationID)

	s := f.reloadLocation(t, src.ID)
	assert.False(t, s.Occupied)
	assert.True(t, s.CurrentWeight.IsZero())
	d := f.reloadLocation(t, dst.ID)
	assert.True(t, d.Occupied)
	assert.True(t, d.CurrentWeight.Equal(decimal.NewFromInt(20)))
}

func TestMoveInventory_ParcialDivideItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "FOOD001", "1")
	src := f.location(t, "A", entity.LocationBulkStorage, "500")
	dst := f.location(t, "B", entity.LocationPicking, "200")
	expiry := fixedNow.AddDate(0, 1, 0)

	item, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 10, LocationID: src.ID, BatchNumber: "B7", ExpiryDate: &expiry})
	require.NoError(t, err)

	moved, err := f.uc.MoveInventory(ctx, item.ID, dst.ID, 4)
	require.NoError(t, err)
	assert.NotEqual(t, item.ID, moved.ID)
	assert.Equal(t, 4, moved.Quantity)
	assert.Equal(t, "B7", moved.BatchNumber)
	require.NotNil(t, moved.ExpiryDate)
	assert.True(t, moved.ExpiryDate.Equal(expiry))

	orig, err := f.repos.Items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, src.ID, orig.LocationID)
	assert.Equal(t, 6, orig.Quantity)
	assert.Equal(t, 10, orig.Quantity+moved.Quantity)
	f.assertStockInvariant(t, p.ID)

	hist, err := f.repos.History.ListByItem(ctx, moved.ID)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, entity.ActionMoved, hist[0].ActionType)
	assert.Equal(t, src.ID, hist[0].SourceLocationID)
	assert.Equal(t, dst.ID, hist[0].DestinationLocationID)
}

func TestMoveInventory_Errores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "1")
	src := f.location(t, "A", entity.LocationBulkStorage, "500")
	dst := f.location(t, "B", entity.LocationPicking, "200")
	item, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 5, LocationID: src.ID})
	require.NoError(t, err)

	_, err = f.uc.MoveInventory(ctx, item.ID, dst.ID, 6)
	assert.ErrorIs(t, err, domain.ErrQuantityExceedsAvailable)

	_, err = f.uc.MoveInventory(ctx, item.ID, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.MoveInventory(ctx, "no-existe", dst.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.MoveInventory(ctx, item.ID, src.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada cambió tras los errores.
	again, err := f.repos.Items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.Quantity)
	assert.Equal(t, src.ID, again.LocationID)
}

func TestRemoveInventory_FEFO(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "FOOD001", "1")
	loc := f.location(t, "A", entity.LocationBulkStorage, "500")
	soon := fixedNow.AddDate(0, 0, 5)
	late := fixedNow.AddDate(0, 2, 0)

	noExpiry, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 10, LocationID: loc.ID})
	require.NoError(t, err)
	lateItem, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 10, LocationID: loc.ID, ExpiryDate: &late})
	require.NoError(t, err)
	soonItem, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 4, LocationID: loc.ID, ExpiryDate: &soon})
	require.NoError(t, err)

	lines, err := f.uc.RemoveInventory(ctx, p.ID, 7)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, soonItem.ID, lines[0].ItemID)
	assert.True(t, lines[0].Consumed)
	assert.Equal(t, lateItem.ID, lines[1].ItemID)
	assert.Equal(t, 3, lines[1].Quantity)

	gone, err := f.repos.Items.GetByID(ctx, soonItem.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "el ítem consumido se elimina")

	untouched, err := f.repos.Items.GetByID(ctx, noExpiry.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, untouched.Quantity)

	assert.Equal(t, 17, f.reloadProduct(t, p.ID).StockQuantity)
	assert.True(t, f.reloadLocation(t, loc.ID).CurrentWeight.Equal(decimal.NewFromInt(17)))

	hist, err := f.repos.History.ListByProduct(ctx, p.ID, 0)
	require.NoError(t, err)
	removed := 0
	for _, h := range hist {
		if h.ActionType == entity.ActionRemoved {
			removed++
		}
	}
	assert.Equal(t, 2, removed, "una fila REMOVED por ítem tocado")
}

// 100 unidades de ELEC001: 60 disponibles y 40 en cuarentena. Retirar 70 falla sin tocar nada.
func TestRemoveInventory_TodoONada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "0.18")
	loc := f.location(t, "A", entity.LocationBulkStorage, "500")

	avail, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 60, LocationID: loc.ID})
	require.NoError(t, err)
	q, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 40, LocationID: loc.ID})
	require.NoError(t, err)
	_, err = f.uc.QuarantineInventory(ctx, q.ID)
	require.NoError(t, err)

	n, err := f.uc.GetAvailableQuantity(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, n)

	_, err = f.uc.RemoveInventory(ctx, p.ID, 70)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	a, _ := f.repos.Items.GetByID(ctx, avail.ID)
	b, _ := f.repos.Items.GetByID(ctx, q.ID)
	assert.Equal(t, 60, a.Quantity)
	assert.Equal(t, 40, b.Quantity)
	assert.Equal(t, 60, f.reloadProduct(t, p.ID).StockQuantity)
	f.assertStockInvariant(t, p.ID)
}

func TestQuarantineInventory_Idempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "1")
	loc := f.location(t, "A", entity.LocationBulkStorage, "500")
	item, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 8, LocationID: loc.ID})
	require.NoError(t, err)

	q, err := f.uc.QuarantineInventory(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, q.Quarantined)
	assert.Equal(t, 0, f.reloadProduct(t, p.ID).StockQuantity)
	assert.True(t, f.reloadLocation(t, loc.ID).CurrentWeight.Equal(decimal.NewFromInt(8)), "la cuarentena no mueve físicamente")

	_, err = f.uc.QuarantineInventory(ctx, item.ID)
	require.NoError(t, err)

	hist, err := f.repos.History.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	quarantined := 0
	for _, h := range hist {
		if h.ActionType == entity.ActionQuarantined {
			quarantined++
		}
	}
	assert.Equal(t, 1, quarantined)

	_, err = f.uc.QuarantineInventory(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCycleCount_MarcaFechaSinCambiarCantidades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "1")
	loc := f.location(t, "A", entity.LocationBulkStorage, "500")
	_, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 3, LocationID: loc.ID})
	require.NoError(t, err)
	_, err = f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 4, LocationID: loc.ID})
	require.NoError(t, err)

	items, err := f.uc.CycleCount(ctx, loc.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	stored, err := f.repos.Items.ListByLocation(ctx, loc.ID)
	require.NoError(t, err)
	for _, it := range stored {
		require.NotNil(t, it.LastCountedAt)
		assert.True(t, it.LastCountedAt.Equal(fixedNow))
	}
	assert.Equal(t, 7, f.reloadProduct(t, p.ID).StockQuantity)

	_, err = f.uc.CycleCount(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpiredAndExpiring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "FOOD001", "1")
	loc := f.location(t, "A", entity.LocationBulkStorage, "500")
	past := fixedNow.AddDate(0, 0, -1)
	in3 := fixedNow.AddDate(0, 0, 3)
	in30 := fixedNow.AddDate(0, 0, 30)
	for _, e := range []*time.Time{&past, &in3, &in30, nil} {
		_, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 1, LocationID: loc.ID, ExpiryDate: e})
		require.NoError(t, err)
	}

	expired, err := f.uc.GetExpiredItems(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.True(t, expired[0].ExpiryDate.Equal(past))

	soon, err := f.uc.GetItemsExpiringWithinDays(ctx, 7)
	require.NoError(t, err)
	require.Len(t, soon, 1)
	assert.True(t, soon[0].ExpiryDate.Equal(in3))

	_, err = f.uc.GetItemsExpiringWithinDays(ctx, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Una ventana más amplia nunca devuelve menos ítems.
	wide, err := f.uc.GetItemsExpiringWithinDays(ctx, appinv.MaxExpiryWindowDays)
	require.NoError(t, err)
	assert.Len(t, wide, 2)

	_, err = f.uc.GetItemsExpiringWithinDays(ctx, 200000)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryUseCase_ResumenYRecientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "1")
	loc := f.location(t, "A", entity.LocationBulkStorage, "500")
	_, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 50, LocationID: loc.ID})
	require.NoError(t, err)
	_, err = f.uc.RemoveInventory(ctx, p.ID, 20)
	require.NoError(t, err)

	h := appinv.NewHistoryUseCase(f.repos.History, f.repos.Products)

	recent, err := h.Recent(ctx, p.ID, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, entity.ActionRemoved, recent[0].ActionType)

	start := fixedNow.AddDate(0, -1, 0)
	end := fixedNow.AddDate(0, 0, 1)
	summary, err := h.MonthlySummary(ctx, p.ID, &start, &end)
	require.NoError(t, err)
	assert.Equal(t, []entity.MonthlySummary{{Month: "2025-03", Additions: 50, Removals: 20}}, summary)

	_, err = h.ByProduct(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// lockRecorder envuelve el TxRunner y anota cada bloqueo de fila en el orden en que ocurre.
type lockRecorder struct {
	inner ports.TxRunner
	locks []string
}

func (l *lockRecorder) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	return l.inner.Run(ctx, func(r ports.Repos) error {
		r.Products = recProducts{r.Products, l}
		r.Items = recItems{r.Items, l}
		r.Locations = recLocations{r.Locations, l}
		return fn(r)
	})
}

type recProducts struct {
	repository.ProductRepository
	rec *lockRecorder
}

func (p recProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p.rec.locks = append(p.rec.locks, "product:"+id)
	return p.ProductRepository.GetForUpdate(ctx, id)
}

type recItems struct {
	repository.InventoryItemRepository
	rec *lockRecorder
}

func (i recItems) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	i.rec.locks = append(i.rec.locks, "item:"+id)
	return i.InventoryItemRepository.GetForUpdate(ctx, id)
}

func (i recItems) ListAvailableForUpdate(ctx context.Context, productID string) ([]*entity.InventoryItem, error) {
	i.rec.locks = append(i.rec.locks, "items-of:"+productID)
	return i.InventoryItemRepository.ListAvailableForUpdate(ctx, productID)
}

type recLocations struct {
	repository.LocationRepository
	rec *lockRecorder
}

func (l recLocations) GetForUpdate(ctx context.Context, id string) (*entity.WarehouseLocation, error) {
	l.rec.locks = append(l.rec.locks, "location:"+id)
	return l.LocationRepository.GetForUpdate(ctx, id)
}

func (l *lockRecorder) kinds() []string {
	out := make([]string, 0, len(l.locks))
	for _, k := range l.locks {
		out = append(out, k[:strings.Index(k, ":")])
	}
	return out
}

func (l *lockRecorder) locationIDs() []string {
	var out []string
	for _, k := range l.locks {
		if id, ok := strings.CutPrefix(k, "location:"); ok {
			out = append(out, id)
		}
	}
	return out
}

// Todas las operaciones bloquean en el mismo orden (producto, ítems, ubicaciones por ID)
// para que dos transacciones concurrentes no se esperen mutuamente.
func TestOrdenDeBloqueo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.product(t, "ELEC001", "1")
	src := f.location(t, "A", entity.LocationBulkStorage, "500")
	dst := f.location(t, "B", entity.LocationPicking, "500")
	for _, aisle := range []string{"C", "D", "E", "F"} {
		f.location(t, aisle, entity.LocationBulkStorage, "500")
	}
	item, err := f.uc.AddInventory(ctx, appinv.AddInput{ProductID: p.ID, Quantity: 10, LocationID: src.ID})
	require.NoError(t, err)

	rec := &lockRecorder{inner: f.store}
	uc := appinv.NewUseCase(rec, f.repos, zerolog.Nop()).WithClock(func() time.Time { return fixedNow })

	t.Run("traslado", func(t *testing.T) {
		rec.locks = nil
		_, err := uc.MoveInventory(ctx, item.ID, dst.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, []string{"product", "item", "location", "location"}, rec.kinds())
		assert.True(t, sort.StringsAreSorted(rec.locationIDs()))
	})

	t.Run("cuarentena", func(t *testing.T) {
		rec.locks = nil
		_, err := uc.QuarantineInventory(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"product", "item"}, rec.kinds())
	})

	t.Run("retiro", func(t *testing.T) {
		rec.locks = nil
		_, err := uc.RemoveInventory(ctx, p.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"product", "items-of"}, rec.kinds()[:2])
	})

	t.Run("conteo", func(t *testing.T) {
		rec.locks = nil
		_, err := uc.CycleCount(ctx, dst.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"product", "location"}, rec.kinds())
	})

	t.Run("asignación automática", func(t *testing.T) {
		other := f.product(t, "HOME001", "1")
		rec.locks = nil
		_, err := uc.AddInventory(ctx, appinv.AddInput{ProductID: other.ID, Quantity: 1})
		require.NoError(t, err)
		kinds := rec.kinds()
		require.NotEmpty(t, kinds)
		assert.Equal(t, "product", kinds[0])
		ids := rec.locationIDs()
		assert.Greater(t, len(ids), 1, "se bloquean todas las candidatas libres")
		assert.True(t, sort.StringsAreSorted(ids), "las ubicaciones se bloquean en orden de ID")
	})
}
