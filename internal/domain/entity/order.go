package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida de un pedido.
type OrderStatus string

const (
	OrderCreated    OrderStatus = "CREATED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderPicking    OrderStatus = "PICKING"
	OrderPacking    OrderStatus = "PACKING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCanceled   OrderStatus = "CANCELED"
)

// OrderStatuses todos los estados en orden de ciclo de vida.
var OrderStatuses = []OrderStatus{
	OrderCreated, OrderProcessing, OrderPicking, OrderPacking, OrderShipped, OrderDelivered, OrderCanceled,
}

// ParseOrderStatus convierte un string (sin distinguir mayúsculas) en OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range OrderStatuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// Order pedido de cliente. Es dueño de sus líneas (Items).
type Order struct {
	ID              string
	OrderNumber     string // único
	CustomerID      string
	Status          OrderStatus
	ShippingAddress string
	Priority        int // 1..5
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea de pedido. SKU y nombre se copian del producto al crear el pedido.
type OrderItem struct {
	ID          string
	ProductID   string
	ProductSKU  string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Picked      bool
	Packed      bool
}

// Total suma precio × cantidad de todas las líneas.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
