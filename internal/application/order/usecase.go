package order

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/order"
	"github.com/jhoicas/wms-api/pkg/telemetry"
)

const tracerName = "github.com/jhoicas/wms-api/internal/application/order"

// UseCase motor de reglas de pedidos: verificación de stock al crear, máquina de estados
// y notificación de cambios de estado una vez confirmada la transacción.
type UseCase struct {
	tx       ports.TxRunner
	repos    ports.Repos
	notifier ports.StatusNotifier
	policy   order.Policy
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el motor de pedidos. notifier nil equivale a no notificar.
func NewUseCase(tx ports.TxRunner, repos ports.Repos, notifier ports.StatusNotifier, policy order.Policy, log zerolog.Logger) *UseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &UseCase{tx: tx, repos: repos, notifier: notifier, policy: policy, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (pruebas).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// CreateInput datos de un pedido nuevo. OrderNumber vacío se genera; Priority 0 equivale a 1.
type CreateInput struct {
	OrderNumber     string
	CustomerID      string
	ShippingAddress string
	Priority        int
	Items           []CreateItemInput
}

// CreateItemInput línea del pedido nuevo.
type CreateItemInput struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// CreateOrder valida el pedido, verifica stock disponible por producto y lo persiste en CREATED.
func (uc *UseCase) CreateOrder(ctx context.Context, in CreateInput) (o *entity.Order, err error) {
	ctx, span := telemetry.Start(ctx, tracerName, "order.CreateOrder", attribute.String("customer.id", in.CustomerID))
	defer func() { telemetry.End(span, err) }()

	if err := validateCreate(&in); err != nil {
		return nil, err
	}
	now := uc.now()
	if in.OrderNumber == "" {
		in.OrderNumber = fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
	}

	requested := make(map[string]int)
	for _, it := range in.Items {
		requested[it.ProductID] += it.Quantity
	}
	productIDs := make([]string, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		existing, err := r.Orders.GetByNumber(ctx, in.OrderNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateOrderNumber, in.OrderNumber)
		}

		products := make(map[string]*entity.Product, len(productIDs))
		for _, id := range productIDs {
			p, err := r.Products.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NotFound("producto", id)
			}
			available, err := r.Items.SumAvailable(ctx, id)
			if err != nil {
				return err
			}
			if available < requested[id] {
				return fmt.Errorf("%w: producto %s (SKU %s): solicitado %d, disponible %d",
					domain.ErrInsufficientStock, p.Name, p.SKU, requested[id], available)
			}
			products[id] = p
		}

		o = &entity.Order{
			ID:              uuid.New().String(),
			OrderNumber:     in.OrderNumber,
			CustomerID:      in.CustomerID,
			Status:          entity.OrderCreated,
			ShippingAddress: in.ShippingAddress,
			Priority:        in.Priority,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		for _, it := range in.Items {
			p := products[it.ProductID]
			o.Items = append(o.Items, entity.OrderItem{
				ID:          uuid.New().String(),
				ProductID:   p.ID,
				ProductSKU:  p.SKU,
				ProductName: p.Name,
				Quantity:    it.Quantity,
				Price:       it.Price,
			})
		}
		return r.Orders.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", o.ID).Str("order_number", o.OrderNumber).Int("lines", len(o.Items)).Msg("pedido creado")
	uc.notify(ctx, o, "")
	return o, nil
}

func validateCreate(in *CreateInput) error {
	in.CustomerID = strings.TrimSpace(in.CustomerID)
	in.OrderNumber = strings.TrimSpace(in.OrderNumber)
	if in.CustomerID == "" {
		return domain.Invalid("customer_id requerido")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return domain.Invalid("shipping_address requerido")
	}
	if in.Priority == 0 {
		in.Priority = 1
	}
	if in.Priority < 1 || in.Priority > 5 {
		return domain.Invalid("priority debe estar entre 1 y 5")
	}
	if len(in.Items) == 0 {
		return domain.Invalid("el pedido debe tener al menos una línea")
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			return domain.Invalid("línea %d: product_id requerido", i+1)
		}
		if it.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser positiva", i+1)
		}
		if it.Price.IsNegative() {
			return domain.Invalid("línea %d: el precio no puede ser negativo", i+1)
		}
	}
	return nil
}

// UpdateOrderStatus aplica una transición. Mismo estado: devuelve el pedido sin cambios ni notificación.
func (uc *UseCase) UpdateOrderStatus(ctx context.Context, orderID string, newStatus entity.OrderStatus) (*entity.Order, error) {
	if _, ok := entity.ParseOrderStatus(string(newStatus)); !ok {
		return nil, domain.Invalid("estado desconocido %q", newStatus)
	}
	return uc.transition(ctx, "order.UpdateOrderStatus", orderID, newStatus, true, func(o *entity.Order) error {
		if !uc.policy.CanTransition(o.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, newStatus)
		}
		return nil
	})
}

// CancelOrder cancela el pedido. DELIVERED y CANCELED (y SHIPPED salvo política) no se cancelan.
func (uc *UseCase) CancelOrder(ctx context.Context, orderID string) (*entity.Order, error) {
	return uc.transition(ctx, "order.CancelOrder", orderID, entity.OrderCanceled, false, func(o *entity.Order) error {
		if !uc.policy.CanCancel(o.Status) {
			return fmt.Errorf("%w: estado actual %s", domain.ErrOrderNotCancelable, o.Status)
		}
		return nil
	})
}

// transition ejecuta guard y persiste el nuevo estado bajo bloqueo del pedido.
// sameIsNoop: si el pedido ya está en to se devuelve sin cambios en lugar de evaluar guard.
func (uc *UseCase) transition(ctx context.Context, op, orderID string, to entity.OrderStatus, sameIsNoop bool, guard func(*entity.Order) error) (o *entity.Order, err error) {
	ctx, span := telemetry.Start(ctx, tracerName, op,
		attribute.String("order.id", orderID), attribute.String("order.status", string(to)))
	defer func() { telemetry.End(span, err) }()

	var old entity.OrderStatus
	changed := false
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		o, err = r.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("pedido", orderID)
		}
		if sameIsNoop && o.Status == to {
			return nil
		}
		if err := guard(o); err != nil {
			return err
		}
		now := uc.now()
		if err := r.Orders.UpdateStatus(ctx, o.ID, to, now); err != nil {
			return err
		}
		old = o.Status
		o.Status = to
		o.UpdatedAt = now
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		uc.log.Info().Str("order_id", o.ID).Str("order_number", o.OrderNumber).
			Str("from", string(old)).Str("to", string(to)).Msg("estado de pedido actualizado")
		uc.notify(ctx, o, old)
	}
	return o, nil
}

// notify se invoca después del Commit; el contexto se desacopla de la cancelación de la petición.
func (uc *UseCase) notify(ctx context.Context, o *entity.Order, old entity.OrderStatus) {
	uc.notifier.Notify(context.WithoutCancel(ctx), ports.StatusChange{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		OldStatus:   old,
		NewStatus:   o.Status,
		OccurredAt:  o.UpdatedAt,
	})
}

// ParseStatus convierte el texto recibido en un estado válido (BadRequest si no existe).
func ParseStatus(s string) (entity.OrderStatus, error) {
	st, ok := entity.ParseOrderStatus(s)
	if !ok {
		return "", domain.Invalid("estado de pedido desconocido %q", s)
	}
	return st, nil
}
