package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain"
)

// HistoryHandler consultas sobre el historial de inventario.
type HistoryHandler struct {
	uc *inventory.HistoryUseCase
}

func NewHistoryHandler(uc *inventory.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// ByProduct godoc
// @Summary      Historial completo de un producto
// @Tags         history
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.HistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory-history/product/{productId} [get]
func (h *HistoryHandler) ByProduct(c *fiber.Ctx) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ByProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewHistoryList(list))
}

// Recent godoc
// @Summary      Últimos movimientos de un producto
// @Tags         history
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Máximo de registros"  default(10)
// @Success      200  {array}  dto.HistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory-history/product/{productId}/recent [get]
func (h *HistoryHandler) Recent(c *fiber.Ctx) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.Recent(c.UserContext(), id, c.QueryInt("limit", 10))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewHistoryList(list))
}

// MonthlySummary godoc
// @Summary      Resumen mensual de altas y bajas
// @Tags         history
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        start      query  string  false  "Desde (YYYY-MM-DD); por defecto seis meses atrás"
// @Param        end        query  string  false  "Hasta (YYYY-MM-DD); por defecto ahora"
// @Success      200  {array}  dto.MonthlySummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory-history/product/{productId}/monthly-summary [get]
func (h *HistoryHandler) MonthlySummary(c *fiber.Ctx) error {
	id, err := pathID(c, "productId")
	if err != nil {
		return writeError(c, err)
	}
	start, err := queryDate(c, "start", false)
	if err != nil {
		return writeError(c, err)
	}
	end, err := queryDate(c, "end", true)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.MonthlySummary(c.UserContext(), id, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMonthlySummaryList(list))
}

// ByItem godoc
// @Summary      Historial de un ítem de inventario
// @Tags         history
// @Produce      json
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200  {array}  dto.HistoryResponse
// @Router       /api/inventory-history/item/{itemId} [get]
func (h *HistoryHandler) ByItem(c *fiber.Ctx) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.ByItem(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewHistoryList(list))
}

// queryDate acepta YYYY-MM-DD o RFC3339. endOfDay lleva una fecha simple al último instante del día.
func queryDate(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, domain.Invalid("%s: fecha inválida %q", name, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
