package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// DefaultRecentLimit registros devueltos por Recent cuando no se indica límite.
const DefaultRecentLimit = 10

// HistoryUseCase consultas sobre el historial de inventario (solo lectura).
type HistoryUseCase struct {
	history  repository.InventoryHistoryRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(history repository.InventoryHistoryRepository, products repository.ProductRepository) *HistoryUseCase {
	return &HistoryUseCase{history: history, products: products, now: time.Now}
}

// ByProduct historial completo de un producto, más reciente primero.
func (uc *HistoryUseCase) ByProduct(ctx context.Context, productID string) ([]*entity.InventoryHistory, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.history.ListByProduct(ctx, productID, 0)
}

// Recent últimos limit registros del producto.
func (uc *HistoryUseCase) Recent(ctx context.Context, productID string, limit int) ([]*entity.InventoryHistory, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.history.ListByProduct(ctx, productID, limit)
}

// ByItem historial de un ítem (sigue disponible aunque el ítem ya no exista).
func (uc *HistoryUseCase) ByItem(ctx context.Context, itemID string) ([]*entity.InventoryHistory, error) {
	return uc.history.ListByItem(ctx, itemID)
}

// MonthlySummary altas y bajas por mes en [start, end]. Sin start se usan los últimos seis meses.
func (uc *HistoryUseCase) MonthlySummary(ctx context.Context, productID string, start, end *time.Time) ([]entity.MonthlySummary, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	now := uc.now()
	to := now
	if end != nil {
		to = *end
	}
	from := inventory.DefaultSummaryStart(now)
	if start != nil {
		from = *start
	}
	if from.After(to) {
		return nil, domain.Invalid("start posterior a end")
	}
	list, err := uc.history.ListByProductBetween(ctx, productID, from, to)
	if err != nil {
		return nil, err
	}
	return inventory.SummarizeByMonth(list), nil
}

func (uc *HistoryUseCase) ensureProduct(ctx context.Context, productID string) error {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound("producto", productID)
	}
	return nil
}
