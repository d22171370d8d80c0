package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/order"
)

func TestCanTransition_TablaCompleta(t *testing.T) {
	allowed := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderCreated:    {entity.OrderProcessing, entity.OrderCanceled},
		entity.OrderProcessing: {entity.OrderPicking, entity.OrderCanceled},
		entity.OrderPicking:    {entity.OrderPacking, entity.OrderCanceled},
		entity.OrderPacking:    {entity.OrderShipped, entity.OrderCanceled},
		entity.OrderShipped:    {entity.OrderDelivered},
	}
	p := order.Policy{}

	for _, from := range entity.OrderStatuses {
		for _, to := range entity.OrderStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, p.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_PoliticaCancelarEnviado(t *testing.T) {
	assert.False(t, order.Policy{}.CanTransition(entity.OrderShipped, entity.OrderCanceled))
	assert.True(t, order.Policy{AllowCancelShipped: true}.CanTransition(entity.OrderShipped, entity.OrderCanceled))
	assert.False(t, order.Policy{AllowCancelShipped: true}.CanCancel(entity.OrderDelivered))
	assert.False(t, order.Policy{AllowCancelShipped: true}.CanCancel(entity.OrderCanceled))
}

func TestIsTerminal(t *testing.T) {
	p := order.Policy{}
	assert.True(t, p.IsTerminal(entity.OrderDelivered))
	assert.True(t, p.IsTerminal(entity.OrderCanceled))
	assert.False(t, p.IsTerminal(entity.OrderShipped))
	assert.ElementsMatch(t, []entity.OrderStatus{entity.OrderDelivered, entity.OrderCanceled},
		order.Policy{AllowCancelShipped: true}.Next(entity.OrderShipped))
}
