package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/inventory"
)

// InventoryHandler motor de inventario: altas, movimientos, retiros FEFO, cuarentena y conteos.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Add godoc
// @Summary      Dar de alta inventario
// @Description  Sin location_id se asigna la primera ubicación BULK_STORAGE con capacidad suficiente.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia"
// @Param        body  body  dto.AddInventoryRequest  true  "Producto, cantidad y ubicación opcional"
// @Success      201   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/add [post]
func (h *InventoryHandler) Add(c *fiber.Ctx) error {
	var in dto.AddInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := bodyIDs("product_id", in.ProductID, "location_id", in.LocationID); err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.AddInventory(c.UserContext(), inventory.AddInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		LocationID:  in.LocationID,
		BatchNumber: in.BatchNumber,
		ExpiryDate:  in.ExpiryDate,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInventoryItemResponse(item))
}

// Move godoc
// @Summary      Mover inventario
// @Description  Cantidad total conserva el ítem; parcial lo divide en la ubicación destino.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.MoveInventoryRequest  true  "Ubicación destino y cantidad"
// @Success      200   {object}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/move [post]
func (h *InventoryHandler) Move(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.MoveInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := bodyIDs("new_location_id", in.NewLocationID); err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.MoveInventory(c.UserContext(), id, in.NewLocationID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// Remove godoc
// @Summary      Retirar inventario (FEFO)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia"
// @Param        body  body  dto.RemoveInventoryRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.RemoveInventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/remove [post]
func (h *InventoryHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := bodyIDs("product_id", in.ProductID); err != nil {
		return writeError(c, err)
	}
	lines, err := h.uc.RemoveInventory(c.UserContext(), in.ProductID, in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.RemoveInventoryResponse{ProductID: in.ProductID, Quantity: in.Quantity, Lines: make([]dto.RemovedLineResponse, 0, len(lines))}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.RemovedLineResponse{ItemID: l.ItemID, LocationID: l.LocationID, Quantity: l.Quantity, Consumed: l.Consumed})
	}
	return c.JSON(out)
}

// Quarantine godoc
// @Summary      Poner un ítem en cuarentena
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/quarantine [post]
func (h *InventoryHandler) Quarantine(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.QuarantineInventory(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// CycleCount godoc
// @Summary      Conteo cíclico de una ubicación
// @Tags         inventory
// @Produce      json
// @Param        locationId  path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/location/{locationId}/count [post]
func (h *InventoryHandler) CycleCount(c *fiber.Ctx) error {
	id, err := pathID(c, "locationId")
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.CycleCount(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemList(items))
}

// GetByID godoc
// @Summary      Obtener ítem de inventario
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	item, err := h.uc.GetItem(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemResponse(item))
}

// ListByProduct godoc
// @Summary      Ítems de un producto
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/product/{productId} [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.ListByProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemList(items))
}

// AvailableQuantity godoc
// @Summary      Cantidad disponible de un producto (excluye cuarentena)
// @Tags         inventory
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.AvailableQuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/product/{productId}/quantity [get]
func (h *InventoryHandler) AvailableQuantity(c *fiber.Ctx) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	qty, err := h.uc.GetAvailableQuantity(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AvailableQuantityResponse{ProductID: id, Available: qty})
}

// ListByLocation godoc
// @Summary      Ítems de una ubicación
// @Tags         inventory
// @Produce      json
// @Param        locationId  path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/location/{locationId} [get]
func (h *InventoryHandler) ListByLocation(c *fiber.Ctx) error {
	id, err := pathID(c, "locationId")
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.ListByLocation(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemList(items))
}

// ListExpired godoc
// @Summary      Ítems vencidos
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/expired [get]
func (h *InventoryHandler) ListExpired(c *fiber.Ctx) error {
	items, err := h.uc.GetExpiredItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemList(items))
}

// ListExpiring godoc
// @Summary      Ítems que vencen dentro de N días
// @Tags         inventory
// @Produce      json
// @Param        days  query  int  false  "Días"  default(7)
// @Success      200   {array}  dto.InventoryItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/expiring [get]
func (h *InventoryHandler) ListExpiring(c *fiber.Ctx) error {
	items, err := h.uc.GetItemsExpiringWithinDays(c.UserContext(), c.QueryInt("days", 7))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewInventoryItemList(items))
}

// StockByCategory godoc
// @Summary      Stock agregado por categoría
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.CategoryStockResponse
// @Router       /api/inventory/stock-by-category [get]
func (h *InventoryHandler) StockByCategory(c *fiber.Ctx) error {
	list, err := h.uc.StockByCategory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.CategoryStockResponse, 0, len(list))
	for _, cs := range list {
		out = append(out, dto.CategoryStockResponse{Category: cs.Category, Quantity: cs.Quantity})
	}
	return c.JSON(out)
}
