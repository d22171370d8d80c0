package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	Category string
	Limit    int
	Offset   int
}

// CategoryStock stock disponible agregado por categoría.
type CategoryStock struct {
	Category string
	Quantity int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Count total de productos que cumplen el filtro, sin paginación.
	Count(ctx context.Context, category string) (int, error)
	ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	StockByCategory(ctx context.Context) ([]CategoryStock, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStockQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}
