package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/order"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	LocationUC     *usecase.LocationUseCase
	InventoryUC    *inventory.UseCase
	HistoryUC      *inventory.HistoryUseCase
	OrderUC        *order.UseCase
	PickingPDF     order.PickingListRenderer
	JWTSecret      string
	Idempotency    ports.IdempotencyStore
	IdempotencyTTL time.Duration
	Log            zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	ttl := deps.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret),
		IdempotencyMiddleware(deps.Idempotency, ttl, deps.Log),
	)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Locations
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Get("/available", locationHandler.ListAvailable)
	locations.Get("/with-space", locationHandler.ListWithSpace)
	locations.Get("/:id", locationHandler.GetByID)

	// Inventory (rutas fijas antes de /:id)
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/expired", inventoryHandler.ListExpired)
	inv.Get("/expiring", inventoryHandler.ListExpiring)
	inv.Get("/stock-by-category", inventoryHandler.StockByCategory)
	inv.Get("/product/:productId", inventoryHandler.ListByProduct)
	inv.Get("/product/:productId/quantity", inventoryHandler.AvailableQuantity)
	inv.Get("/location/:locationId", inventoryHandler.ListByLocation)
	inv.Post("/location/:locationId/count", inventoryHandler.CycleCount)
	inv.Post("/add", inventoryHandler.Add)
	inv.Post("/remove", inventoryHandler.Remove)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Post("/:id/move", inventoryHandler.Move)
	inv.Post("/:id/quarantine", inventoryHandler.Quarantine)

	// Inventory history
	history := api.Group("/inventory-history")
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	history.Get("/product/:productId", historyHandler.ByProduct)
	history.Get("/product/:productId/recent", historyHandler.Recent)
	history.Get("/product/:productId/monthly-summary", historyHandler.MonthlySummary)
	history.Get("/item/:itemId", historyHandler.ByItem)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.PickingPDF)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/priority", orderHandler.ListByPriority)
	orders.Get("/number/:number", orderHandler.GetByNumber)
	orders.Get("/customer/:customerId", orderHandler.ListByCustomer)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/picking-list", orderHandler.PickingList)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/cancel", orderHandler.Cancel)
}
