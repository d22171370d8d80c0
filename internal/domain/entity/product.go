package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold por debajo de este stock un producto se considera con stock bajo.
const LowStockThreshold = 10

// Product representa un producto del catálogo.
// Weight está en kg por unidad; StockQuantity es derivado (suma de ítems no en cuarentena).
type Product struct {
	ID            string
	SKU           string // único
	Name          string
	Description   string
	Weight        decimal.Decimal
	Width         decimal.Decimal
	Height        decimal.Decimal
	Depth         decimal.Decimal
	Category      string
	StockQuantity int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasValidDimensions indica si peso y dimensiones son positivos.
func (p *Product) HasValidDimensions() bool {
	return p.Weight.IsPositive() && p.Width.IsPositive() && p.Height.IsPositive() && p.Depth.IsPositive()
}
