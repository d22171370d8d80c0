package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/order"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// OrderHandler pedidos: creación, máquina de estados, consultas y hoja de preparación.
type OrderHandler struct {
	uc       *order.UseCase
	renderer order.PickingListRenderer
}

// NewOrderHandler construye el handler. Sin renderer la hoja de preparación responde 501.
func NewOrderHandler(uc *order.UseCase, renderer order.PickingListRenderer) *OrderHandler {
	return &OrderHandler{uc: uc, renderer: renderer}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Verifica stock disponible por producto; el pedido queda en CREATED.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia"
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	items := make([]order.CreateItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		if err := bodyIDs("items.product_id", it.ProductID); err != nil {
			return writeError(c, err)
		}
		items = append(items, order.CreateItemInput{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	o, err := h.uc.CreateOrder(c.UserContext(), order.CreateInput{
		OrderNumber:     in.OrderNumber,
		CustomerID:      in.CustomerID,
		ShippingAddress: in.ShippingAddress,
		Priority:        in.Priority,
		Items:           items,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(o))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()

	var (
		list  []*entity.Order
		total int
		err   error
	)
	if raw := c.Query("status"); raw != "" {
		var st entity.OrderStatus
		if st, err = order.ParseStatus(raw); err != nil {
			return writeError(c, err)
		}
		list, err = h.uc.ListByStatus(ctx, st)
		total = len(list)
	} else {
		list, err = h.uc.List(ctx, page.Limit, page.Offset)
		if err == nil {
			total, err = h.uc.Count(ctx)
		}
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrderListResponse{
		Items: dto.NewOrderList(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// ListByPriority godoc
// @Summary      Pedidos con prioridad >= min
// @Tags         orders
// @Produce      json
// @Param        min  query  int  false  "Prioridad mínima"  default(5)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/priority [get]
func (h *OrderHandler) ListByPriority(c *fiber.Ctx) error {
	list, err := h.uc.ListByMinPriority(c.UserContext(), c.QueryInt("min", 5))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderList(list))
}

// GetByNumber godoc
// @Summary      Obtener pedido por número
// @Tags         orders
// @Produce      json
// @Param        number  path  string  true  "Número de pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/number/{number} [get]
func (h *OrderHandler) GetByNumber(c *fiber.Ctx) error {
	o, err := h.uc.GetByNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// ListByCustomer godoc
// @Summary      Pedidos de un cliente
// @Tags         orders
// @Produce      json
// @Param        customerId  path  string  true  "ID del cliente"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/customer/{customerId} [get]
func (h *OrderHandler) ListByCustomer(c *fiber.Ctx) error {
	list, err := h.uc.ListByCustomer(c.UserContext(), c.Params("customerId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderList(list))
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  CREATED→PROCESSING→PICKING→PACKING→SHIPPED→DELIVERED. Mismo estado es no-op.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	st, err := order.ParseStatus(in.Status)
	if err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.UpdateOrderStatus(c.UserContext(), id, st)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.CancelOrder(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewOrderResponse(o))
}

// PickingList godoc
// @Summary      Hoja de preparación en PDF
// @Description  Tomas sugeridas por FEFO sobre el stock actual; no reserva inventario.
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/picking-list [get]
func (h *OrderHandler) PickingList(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if h.renderer == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "generador de PDF no configurado"})
	}
	list, err := h.uc.PickingList(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.renderer.Render(list)
	if err != nil {
		return writeError(c, fmt.Errorf("generar hoja de preparación: %w", err))
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "picking-"+list.Order.OrderNumber+".pdf"))
	return c.Send(pdf)
}
