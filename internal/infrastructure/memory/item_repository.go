package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems de inventario en memoria.
type ItemRepo struct{ d *db }

func (r *ItemRepo) Create(_ context.Context, it *entity.InventoryItem) error {
	return r.d.write(func(st *state) error {
		if _, ok := st.products[it.ProductID]; !ok {
			return domain.NotFound("producto", it.ProductID)
		}
		if _, ok := st.locations[it.LocationID]; !ok {
			return domain.NotFound("ubicación", it.LocationID)
		}
		st.items[it.ID] = copyItem(*it)
		st.track(it.ID)
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	var out *entity.InventoryItem
	r.d.read(func(st *state) {
		if it, ok := st.items[id]; ok {
			c := copyItem(it)
			out = &c
		}
	})
	return out, nil
}

func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(_ context.Context, it *entity.InventoryItem) error {
	return r.d.write(func(st *state) error {
		if _, ok := st.items[it.ID]; !ok {
			return domain.ErrNotFound
		}
		st.items[it.ID] = copyItem(*it)
		return nil
	})
}

func (r *ItemRepo) Delete(_ context.Context, id string) error {
	return r.d.write(func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.items, id)
		return nil
	})
}

func (r *ItemRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryItem, error) {
	return r.filter(func(it entity.InventoryItem) bool { return it.ProductID == productID }), nil
}

func (r *ItemRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.InventoryItem, error) {
	return r.filter(func(it entity.InventoryItem) bool { return it.LocationID == locationID }), nil
}

func (r *ItemRepo) ListAvailableForUpdate(_ context.Context, productID string) ([]*entity.InventoryItem, error) {
	return r.filter(func(it entity.InventoryItem) bool { return it.ProductID == productID && !it.Quarantined }), nil
}

func (r *ItemRepo) SumAvailable(_ context.Context, productID string) (int, error) {
	total := 0
	r.d.read(func(st *state) {
		for _, it := range st.items {
			if it.ProductID == productID && !it.Quarantined {
				total += it.Quantity
			}
		}
	})
	return total, nil
}

func (r *ItemRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	return len(r.filter(func(it entity.InventoryItem) bool { return it.ProductID == productID })), nil
}

func (r *ItemRepo) ListExpiredBefore(_ context.Context, t time.Time) ([]*entity.InventoryItem, error) {
	return r.filter(func(it entity.InventoryItem) bool { return it.IsExpired(t) }), nil
}

func (r *ItemRepo) ListExpiringBetween(_ context.Context, from, to time.Time) ([]*entity.InventoryItem, error) {
	return r.filter(func(it entity.InventoryItem) bool { return it.ExpiresBetween(from, to) }), nil
}

// filter devuelve copias ordenadas por creación (e inserción en empates).
func (r *ItemRepo) filter(keep func(entity.InventoryItem) bool) []*entity.InventoryItem {
	var out []*entity.InventoryItem
	var seq map[string]int64
	r.d.read(func(st *state) {
		seq = make(map[string]int64)
		for id, it := range st.items {
			if keep(it) {
				c := copyItem(it)
				out = append(out, &c)
				seq[id] = st.seq[id]
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return seq[out[i].ID] < seq[out[j].ID]
	})
	return out
}
