package order_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/wms-api/internal/application/inventory"
	apporder "github.com/jhoicas/wms-api/internal/application/order"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/order"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
)

// recordingNotifier registra los eventos recibidos.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.StatusChange
}

func (n *recordingNotifier) Notify(_ context.Context, c ports.StatusChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, c)
}

func (n *recordingNotifier) all() []ports.StatusChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.StatusChange(nil), n.events...)
}

type fixture struct {
	repos    ports.Repos
	inv      *appinv.UseCase
	orders   *apporder.UseCase
	notifier *recordingNotifier
	product  *entity.Product
	location *entity.WarehouseLocation
}

func newFixture(t *testing.T, policy order.Policy) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	repos := s.Repos()
	n := &recordingNotifier{}
	f := &fixture{
		repos:    repos,
		inv:      appinv.NewUseCase(s, repos, zerolog.Nop()),
		orders:   apporder.NewUseCase(s, repos, n, policy, zerolog.Nop()),
		notifier: n,
	}
	f.product = &entity.Product{ID: uuid.New().String(), SKU: "ELEC001", Name: "Smartphone X",
		Weight: decimal.RequireFromString("0.18"), Width: decimal.NewFromInt(7), Height: decimal.NewFromInt(15),
		Depth: decimal.NewFromInt(1), Category: "Electronics"}
	require.NoError(t, repos.Products.Create(ctx, f.product))
	f.location = &entity.WarehouseLocation{ID: uuid.New().String(), Aisle: "A", Rack: "1", Shelf: "1", Bin: "1",
		Type: entity.LocationBulkStorage, MaxWeight: decimal.NewFromInt(500)}
	require.NoError(t, repos.Locations.Create(ctx, f.location))
	return f
}

func (f *fixture) stock(t *testing.T, qty int) {
	t.Helper()
	_, err := f.inv.AddInventory(context.Background(), appinv.AddInput{ProductID: f.product.ID, Quantity: qty, LocationID: f.location.ID})
	require.NoError(t, err)
}

func (f *fixture) newOrder(t *testing.T, number string, qty int) *entity.Order {
	t.Helper()
	o, err := f.orders.CreateOrder(context.Background(), apporder.CreateInput{
		OrderNumber: number, CustomerID: "C-1", ShippingAddress: "Calle 1", Priority: 3,
		Items: []apporder.CreateItemInput{{ProductID: f.product.ID, Quantity: qty, Price: decimal.RequireFromString("199.99")}},
	})
	require.NoError(t, err)
	return o
}

func TestCreateOrder_EstadoCreatedYSnapshot(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 10)

	o := f.newOrder(t, "ORD-1", 5)
	assert.Equal(t, entity.OrderCreated, o.Status)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "ELEC001", o.Items[0].ProductSKU)
	assert.Equal(t, "Smartphone X", o.Items[0].ProductName)

	events := f.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, entity.OrderStatus(""), events[0].OldStatus)
	assert.Equal(t, entity.OrderCreated, events[0].NewStatus)
	assert.Equal(t, "ORD-1", events[0].OrderNumber)
}

func TestCreateOrder_StockInsuficienteNombraProducto(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 3)

	_, err := f.orders.CreateOrder(context.Background(), apporder.CreateInput{
		OrderNumber: "ORD-1", CustomerID: "C-1", ShippingAddress: "Calle 1",
		Items: []apporder.CreateItemInput{{ProductID: f.product.ID, Quantity: 5}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "ELEC001")
	assert.Empty(t, f.notifier.all())
}

func TestCreateOrder_StockSumadoPorProducto(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 5)

	_, err := f.orders.CreateOrder(context.Background(), apporder.CreateInput{
		OrderNumber: "ORD-1", CustomerID: "C-1", ShippingAddress: "Calle 1",
		Items: []apporder.CreateItemInput{
			{ProductID: f.product.ID, Quantity: 3},
			{ProductID: f.product.ID, Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 10)
	f.newOrder(t, "ORD-1", 1)

	tests := []struct {
		name string
		in   apporder.CreateInput
		want error
	}{
		{"sin líneas", apporder.CreateInput{CustomerID: "C", ShippingAddress: "x"}, domain.ErrInvalidInput},
		{"prioridad fuera de rango", apporder.CreateInput{CustomerID: "C", ShippingAddress: "x", Priority: 6,
			Items: []apporder.CreateItemInput{{ProductID: f.product.ID, Quantity: 1}}}, domain.ErrInvalidInput},
		{"cantidad cero", apporder.CreateInput{CustomerID: "C", ShippingAddress: "x",
			Items: []apporder.CreateItemInput{{ProductID: f.product.ID}}}, domain.ErrInvalidInput},
		{"producto inexistente", apporder.CreateInput{CustomerID: "C", ShippingAddress: "x",
			Items: []apporder.CreateItemInput{{ProductID: "no-existe", Quantity: 1}}}, domain.ErrNotFound},
		{"número duplicado", apporder.CreateInput{OrderNumber: "ORD-1", CustomerID: "C", ShippingAddress: "x",
			Items: []apporder.CreateItemInput{{ProductID: f.product.ID, Quantity: 1}}}, domain.ErrDuplicateOrderNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.CreateOrder(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateOrder_GeneraNumeroYPrioridadPorDefecto(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 10)

	o, err := f.orders.CreateOrder(context.Background(), apporder.CreateInput{
		CustomerID: "C-1", ShippingAddress: "Calle 1",
		Items: []apporder.CreateItemInput{{ProductID: f.product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, o.OrderNumber)
	assert.Equal(t, 1, o.Priority)
}

func TestUpdateOrderStatus_SaltoFallaYTransicionNotifica(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 10)
	o := f.newOrder(t, "ORD-1", 1)
	ctx := context.Background()

	_, err := f.orders.UpdateOrderStatus(ctx, o.ID, entity.OrderPacking)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrConflict)

	updated, err := f.orders.UpdateOrderStatus(ctx, o.ID, entity.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, updated.Status)

	events := f.notifier.all()
	require.Len(t, events, 2, "CREATED al crear y una por la transición")
	assert.Equal(t, entity.OrderCreated, events[1].OldStatus)
	assert.Equal(t, entity.OrderProcessing, events[1].NewStatus)
}

func TestUpdateOrderStatus_MismoEstadoEsNoop(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 10)
	o := f.newOrder(t, "ORD-1", 1)

	same, err := f.orders.UpdateOrderStatus(context.Background(), o.ID, entity.OrderCreated)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCreated, same.Status)
	assert.Len(t, f.notifier.all(), 1)
}

func TestUpdateOrderStatus_CicloCompleto(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 10)
	o := f.newOrder(t, "ORD-1", 1)
	ctx := context.Background()

	for _, st := range []entity.OrderStatus{entity.OrderProcessing, entity.OrderPicking, entity.OrderPacking, entity.OrderShipped, entity.OrderDelivered} {
		_, err := f.orders.UpdateOrderStatus(ctx, o.ID, st)
		require.NoError(t, err, "-> %s", st)
	}
	_, err := f.orders.UpdateOrderStatus(ctx, o.ID, entity.OrderCanceled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.orders.UpdateOrderStatus(ctx, o.ID, entity.OrderStatus("LOST"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.UpdateOrderStatus(ctx, "no-existe", entity.OrderProcessing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("desde PICKING", func(t *testing.T) {
		f := newFixture(t, order.Policy{})
		f.stock(t, 10)
		o := f.newOrder(t, "ORD-1", 1)
		_, err := f.orders.UpdateOrderStatus(ctx, o.ID, entity.OrderProcessing)
		require.NoError(t, err)
		_, err = f.orders.UpdateOrderStatus(ctx, o.ID, entity.OrderPicking)
		require.NoError(t, err)

		c, err := f.orders.CancelOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCanceled, c.Status)
		events := f.notifier.all()
		assert.Equal(t, entity.OrderCanceled, events[len(events)-1].NewStatus)

		_, err = f.orders.CancelOrder(ctx, o.ID)
		assert.ErrorIs(t, err, domain.ErrOrderNotCancelable, "cancelar dos veces es conflicto")
	})

	shipped := func(t *testing.T, f *fixture) *entity.Order {
		f.stock(t, 10)
		o := f.newOrder(t, "ORD-1", 1)
		for _, st := range []entity.OrderStatus{entity.OrderProcessing, entity.OrderPicking, entity.OrderPacking, entity.OrderShipped} {
			_, err := f.orders.UpdateOrderStatus(ctx, o.ID, st)
			require.NoError(t, err)
		}
		return o
	}

	t.Run("SHIPPED rechazado por defecto", func(t *testing.T) {
		f := newFixture(t, order.Policy{})
		o := shipped(t, f)
		_, err := f.orders.CancelOrder(ctx, o.ID)
		assert.ErrorIs(t, err, domain.ErrOrderNotCancelable)
	})

	t.Run("SHIPPED permitido con política", func(t *testing.T) {
		f := newFixture(t, order.Policy{AllowCancelShipped: true})
		o := shipped(t, f)
		c, err := f.orders.CancelOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderCanceled, c.Status)
	})
}

func TestQueries(t *testing.T) {
	f := newFixture(t, order.Policy{})
	f.stock(t, 10)
	ctx := context.Background()
	a := f.newOrder(t, "ORD-A", 1)
	f.newOrder(t, "ORD-B", 1)
	_, err := f.orders.UpdateOrderStatus(ctx, a.ID, entity.OrderProcessing)
	require.NoError(t, err)

	byNumber, err := f.orders.GetByNumber(ctx, "ORD-A")
	require.NoError(t, err)
	assert.Equal(t, a.ID, byNumber.ID)

	processing, err := f.orders.ListByStatus(ctx, entity.OrderProcessing)
	require.NoError(t, err)
	require.Len(t, processing, 1)
	assert.Equal(t, a.ID, processing[0].ID)

	byCustomer, err := f.orders.ListByCustomer(ctx, "C-1")
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	_, err = f.orders.ListByMinPriority(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	st, err := apporder.ParseStatus("picking")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPicking, st)
	_, err = apporder.ParseStatus("nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPickingList_FEFOYFaltante(t *testing.T) {
	f := newFixture(t, order.Policy{})
	ctx := context.Background()
	soon := time.Now().AddDate(0, 0, 3)
	_, err := f.inv.AddInventory(ctx, appinv.AddInput{ProductID: f.product.ID, Quantity: 2, LocationID: f.location.ID, ExpiryDate: &soon, BatchNumber: "L1"})
	require.NoError(t, err)
	f.stock(t, 3)

	o := f.newOrder(t, "ORD-1", 4)
	list, err := f.orders.PickingList(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, list.Lines, 1)
	line := list.Lines[0]
	require.Len(t, line.Picks, 2)
	assert.Equal(t, "L1", line.Picks[0].BatchNumber)
	assert.Equal(t, 2, line.Picks[0].Quantity)
	assert.Equal(t, "A-1-1-1", line.Picks[0].LocationCode)
	assert.Equal(t, 2, line.Picks[1].Quantity)
	assert.Zero(t, line.Shortfall)

	_, err = f.inv.RemoveInventory(ctx, f.product.ID, 3)
	require.NoError(t, err)
	list, err = f.orders.PickingList(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Lines[0].Shortfall)
}
