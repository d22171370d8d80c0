package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// ProductUseCase catálogo de productos. StockQuantity solo cambia vía el motor de inventario.
type ProductUseCase struct {
	tx    ports.TxRunner
	repos ports.Repos
	log   zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner, repos ports.Repos, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{tx: tx, repos: repos, log: log}
}

// Create crea un nuevo producto con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.Invalid("sku y name son requeridos")
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Weight:      in.Weight,
		Width:       in.Width,
		Height:      in.Height,
		Depth:       in.Depth,
		Category:    strings.TrimSpace(in.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !product.HasValidDimensions() {
		return nil, domain.Invalid("peso y dimensiones deben ser positivos")
	}
	existing, err := uc.repos.Products.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, in.SKU)
	}
	if err := uc.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", id)
	}
	return toProductResponse(product), nil
}

// GetBySKU obtiene un producto por SKU.
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.repos.Products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", sku)
	}
	return toProductResponse(product), nil
}

// List lista productos por SKU con paginación y filtro opcional de categoría.
func (uc *ProductUseCase) List(ctx context.Context, category string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	category = strings.TrimSpace(category)
	list, err := uc.repos.Products.List(ctx, repository.ProductFilter{
		Category: category, Limit: page.Limit, Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	total, err := uc.repos.Products.Count(ctx, category)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductList(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListLowStock productos con stock por debajo de entity.LowStockThreshold.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repos.Products.ListLowStock(ctx, entity.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	return toProductList(list), nil
}

// Update actualiza los campos editables. Si cambia el peso, recalcula el peso actual
// de todas las ubicaciones que contienen el producto en la misma transacción.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", id)
		}
		oldWeight := product.Weight
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Invalid("name no puede quedar vacío")
			}
			product.Name = name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Weight != nil {
			product.Weight = *in.Weight
		}
		if in.Width != nil {
			product.Width = *in.Width
		}
		if in.Height != nil {
			product.Height = *in.Height
		}
		if in.Depth != nil {
			product.Depth = *in.Depth
		}
		if in.Category != nil {
			product.Category = strings.TrimSpace(*in.Category)
		}
		if !product.HasValidDimensions() {
			return domain.Invalid("peso y dimensiones deben ser positivos")
		}
		product.UpdatedAt = time.Now()
		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}
		out = product

		if product.Weight.Equal(oldWeight) {
			return nil
		}
		locs, err := r.Locations.ListHoldingProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(locs))
		for _, l := range locs {
			ids = append(ids, l.ID)
		}
		sort.Strings(ids)
		for _, locID := range ids {
			if _, err := r.Locations.GetForUpdate(ctx, locID); err != nil {
				return err
			}
			if err := inventory.RecomputeLocation(ctx, r, locID); err != nil {
				return err
			}
		}
		uc.log.Info().Str("product_id", product.ID).Int("locations", len(ids)).Msg("peso actualizado, ubicaciones recalculadas")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// Delete elimina un producto sin inventario ni historial.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("producto", id)
		}
		n, err := r.Items.CountByProduct(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %s tiene %d ítems de inventario", domain.ErrProductInUse, product.SKU, n)
		}
		hist, err := r.History.ListByProduct(ctx, id, 1)
		if err != nil {
			return err
		}
		if len(hist) > 0 {
			return fmt.Errorf("%w: %s tiene historial de inventario", domain.ErrProductInUse, product.SKU)
		}
		return r.Products.Delete(ctx, id)
	})
}

func toProductList(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Weight:        p.Weight,
		Width:         p.Width,
		Height:        p.Height,
		Depth:         p.Depth,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		LowStock:      p.StockQuantity < entity.LowStockThreshold,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
