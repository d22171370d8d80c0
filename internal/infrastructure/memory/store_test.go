package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
)

func newProduct(id, sku string) *entity.Product {
	return &entity.Product{ID: id, SKU: sku, Name: sku, Weight: decimal.NewFromInt(1), Category: "Electronics"}
}

func TestRun_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Repos().Products.Create(ctx, newProduct("p1", "SKU1")))

	boom := errors.New("boom")
	err := s.Run(ctx, func(r ports.Repos) error {
		require.NoError(t, r.Products.UpdateStockQuantity(ctx, "p1", 99))
		require.NoError(t, r.Products.Create(ctx, newProduct("p2", "SKU2")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.StockQuantity)

	p2, err := s.Repos().Products.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, p2)
}

func TestRun_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Run(ctx, func(r ports.Repos) error {
		return r.Products.Create(ctx, newProduct("p1", "SKU1"))
	}))

	p, err := s.Repos().Products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "p1", p.ID)
}

func TestProductRepo_SKUDuplicado(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Products.Create(ctx, newProduct("p1", "SKU1")))

	err := repos.Products.Create(ctx, newProduct("p2", "SKU1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOrderRepo_CopiasAisladas(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	o := &entity.Order{ID: "o1", OrderNumber: "ORD-1", Status: entity.OrderCreated, Priority: 1,
		Items: []entity.OrderItem{{ID: "i1", ProductID: "p1", Quantity: 2}}, CreatedAt: time.Now()}
	require.NoError(t, repos.Orders.Create(ctx, o))

	got, err := repos.Orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	got.Items[0].Quantity = 100

	again, err := repos.Orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity)

	assert.ErrorIs(t, repos.Orders.Create(ctx, &entity.Order{ID: "o2", OrderNumber: "ORD-1"}), domain.ErrDuplicateOrderNumber)
}

func TestOrderRepo_ListByMinPriority(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []int{2, 5, 3, 5} {
		require.NoError(t, repos.Orders.Create(ctx, &entity.Order{
			ID: string(rune('a' + i)), OrderNumber: string(rune('A' + i)), Priority: p,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	list, err := repos.Orders.ListByMinPriority(ctx, 3)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"d", "b", "c"}, ids)
}
