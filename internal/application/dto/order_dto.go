package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// CreateOrderRequest body de POST /api/orders. order_number vacío se genera.
type CreateOrderRequest struct {
	OrderNumber     string                   `json:"order_number,omitempty"`
	CustomerID      string                   `json:"customer_id" validate:"required"`
	ShippingAddress string                   `json:"shipping_address" validate:"required"`
	Priority        int                      `json:"priority" validate:"omitempty,min=1,max=5"`
	Items           []CreateOrderItemRequest `json:"items" validate:"required,min=1"`
}

// CreateOrderItemRequest línea de un pedido nuevo.
type CreateOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateOrderStatusRequest body de PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerID      string              `json:"customer_id"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shipping_address"`
	Priority        int                 `json:"priority"`
	Items           []OrderItemResponse `json:"items"`
	Total           decimal.Decimal     `json:"total"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Picked      bool            `json:"picked"`
	Packed      bool            `json:"packed"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Picked:      it.Picked,
			Packed:      it.Packed,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		Priority:        o.Priority,
		Items:           items,
		Total:           o.Total(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func NewOrderList(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
