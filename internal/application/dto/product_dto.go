package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Peso en kg, dimensiones en cm.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=64"`
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description"`
	Weight      decimal.Decimal `json:"weight" validate:"gt=0"`
	Width       decimal.Decimal `json:"width" validate:"gt=0"`
	Height      decimal.Decimal `json:"height" validate:"gt=0"`
	Depth       decimal.Decimal `json:"depth" validate:"gt=0"`
	Category    string          `json:"category"`
}

// UpdateProductRequest entrada para actualizar un producto. SKU y stock no son editables.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Weight      *decimal.Decimal `json:"weight"`
	Width       *decimal.Decimal `json:"width"`
	Height      *decimal.Decimal `json:"height"`
	Depth       *decimal.Decimal `json:"depth"`
	Category    *string          `json:"category"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Weight        decimal.Decimal `json:"weight"`
	Width         decimal.Decimal `json:"width"`
	Height        decimal.Decimal `json:"height"`
	Depth         decimal.Decimal `json:"depth"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryStockResponse stock agregado por categoría.
type CategoryStockResponse struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}
