package ports

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// StatusChange evento emitido tras confirmar un cambio de estado de pedido.
// OldStatus vacío significa que el pedido acaba de crearse.
type StatusChange struct {
	OrderID     string
	OrderNumber string
	CustomerID  string
	OldStatus   entity.OrderStatus
	NewStatus   entity.OrderStatus
	OccurredAt  time.Time
}

// StatusNotifier puerto de salida para notificar cambios de estado.
// Best-effort: no debe bloquear ni devolver errores al motor de pedidos.
type StatusNotifier interface {
	Notify(ctx context.Context, change StatusChange)
}

// NopNotifier descarta los eventos.
type NopNotifier struct{}

// Notify no hace nada.
func (NopNotifier) Notify(context.Context, StatusChange) {}
