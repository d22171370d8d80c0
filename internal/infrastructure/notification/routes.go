package notification

import (
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// Route destino de un cambio de estado en el bus de mensajes.
type Route struct {
	Topic string
	Key   string
	text  string
}

// routes por estado nuevo. CREATED no tiene destino: solo se registra en log.
var routes = map[entity.OrderStatus]Route{
	entity.OrderProcessing: {Topic: "wms-notifications", Key: "warehouse-staff", text: "Pedido %s listo para procesar"},
	entity.OrderPicking:    {Topic: "wms-operations", Key: "inventory-allocation", text: "Asignar inventario para el pedido %s"},
	entity.OrderPacking:    {Topic: "wms-operations", Key: "packing-station", text: "Pedido %s listo para empaque"},
	entity.OrderShipped:    {Topic: "wms-external", Key: "customer-notifications", text: "El pedido %s fue despachado"},
	entity.OrderDelivered:  {Topic: "wms-analytics", Key: "completed-orders", text: "Pedido %s entregado correctamente"},
	entity.OrderCanceled:   {Topic: "wms-operations", Key: "inventory-release", text: "Liberar inventario del pedido cancelado %s"},
}

// RouteFor devuelve el destino del estado nuevo, false si no se publica.
func RouteFor(status entity.OrderStatus) (Route, bool) {
	r, ok := routes[status]
	return r, ok
}

// Message cuerpo JSON publicado en el bus.
type Message struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status,omitempty"`
	NewStatus   string    `json:"new_status"`
	Message     string    `json:"message"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newMessage(r Route, c ports.StatusChange) Message {
	ref := c.OrderNumber
	if ref == "" {
		ref = c.OrderID
	}
	return Message{
		OrderID:     c.OrderID,
		OrderNumber: c.OrderNumber,
		OldStatus:   string(c.OldStatus),
		NewStatus:   string(c.NewStatus),
		Message:     fmt.Sprintf(r.text, ref),
		OccurredAt:  c.OccurredAt,
	}
}
