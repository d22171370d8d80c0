package order

import "github.com/jhoicas/wms-api/internal/domain/entity"

// transitions tabla de transiciones permitidas (sin la política de cancelación tras envío).
var transitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderCreated:    {entity.OrderProcessing, entity.OrderCanceled},
	entity.OrderProcessing: {entity.OrderPicking, entity.OrderCanceled},
	entity.OrderPicking:    {entity.OrderPacking, entity.OrderCanceled},
	entity.OrderPacking:    {entity.OrderShipped, entity.OrderCanceled},
	entity.OrderShipped:    {entity.OrderDelivered},
	entity.OrderDelivered:  {},
	entity.OrderCanceled:   {},
}

// Policy reglas configurables de la máquina de estados.
type Policy struct {
	// AllowCancelShipped habilita SHIPPED -> CANCELED (devolución en tránsito).
	AllowCancelShipped bool
}

// CanTransition indica si from -> to es legal. Misma-a-misma no es una transición.
func (p Policy) CanTransition(from, to entity.OrderStatus) bool {
	if from == entity.OrderShipped && to == entity.OrderCanceled {
		return p.AllowCancelShipped
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel indica si un pedido en el estado dado puede cancelarse.
func (p Policy) CanCancel(from entity.OrderStatus) bool {
	return p.CanTransition(from, entity.OrderCanceled)
}

// Next estados alcanzables desde from.
func (p Policy) Next(from entity.OrderStatus) []entity.OrderStatus {
	out := append([]entity.OrderStatus(nil), transitions[from]...)
	if from == entity.OrderShipped && p.AllowCancelShipped {
		out = append(out, entity.OrderCanceled)
	}
	return out
}

// IsTerminal indica si no hay salida desde el estado.
func (p Policy) IsTerminal(s entity.OrderStatus) bool {
	return len(p.Next(s)) == 0
}
