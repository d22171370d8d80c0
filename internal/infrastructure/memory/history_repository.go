package memory

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.InventoryHistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial append-only en memoria (slice en orden de inserción).
type HistoryRepo struct{ d *db }

func (r *HistoryRepo) Create(_ context.Context, h *entity.InventoryHistory) error {
	return r.d.write(func(st *state) error {
		st.history = append(st.history, *h)
		return nil
	})
}

func (r *HistoryRepo) ListByProduct(_ context.Context, productID string, limit int) ([]*entity.InventoryHistory, error) {
	out := r.newestFirst(func(h entity.InventoryHistory) bool { return h.ProductID == productID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *HistoryRepo) ListByItem(_ context.Context, itemID string) ([]*entity.InventoryHistory, error) {
	return r.newestFirst(func(h entity.InventoryHistory) bool { return h.InventoryItemID == itemID }), nil
}

func (r *HistoryRepo) ListByProductBetween(_ context.Context, productID string, from, to time.Time) ([]*entity.InventoryHistory, error) {
	return r.newestFirst(func(h entity.InventoryHistory) bool {
		return h.ProductID == productID && !h.Timestamp.Before(from) && !h.Timestamp.After(to)
	}), nil
}

// newestFirst recorre el slice al revés; el orden de inserción ya es cronológico.
func (r *HistoryRepo) newestFirst(keep func(entity.InventoryHistory) bool) []*entity.InventoryHistory {
	var out []*entity.InventoryHistory
	r.d.read(func(st *state) {
		for i := len(st.history) - 1; i >= 0; i-- {
			if h := st.history[i]; keep(h) {
				out = append(out, &h)
			}
		}
	})
	return out
}
