package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones en memoria.
type LocationRepo struct{ d *db }

func (r *LocationRepo) Create(_ context.Context, l *entity.WarehouseLocation) error {
	return r.d.write(func(st *state) error {
		for _, existing := range st.locations {
			if existing.Code() == l.Code() {
				return domain.ErrDuplicate
			}
		}
		st.locations[l.ID] = *l
		st.track(l.ID)
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.WarehouseLocation, error) {
	var out *entity.WarehouseLocation
	r.d.read(func(st *state) {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
	})
	return out, nil
}

func (r *LocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.WarehouseLocation, error) {
	return r.GetByID(ctx, id)
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.WarehouseLocation, error) {
	return r.filter(func(*state, entity.WarehouseLocation) bool { return true }), nil
}

func (r *LocationRepo) ListByType(_ context.Context, t entity.LocationType) ([]*entity.WarehouseLocation, error) {
	return r.filter(func(_ *state, l entity.WarehouseLocation) bool { return l.Type == t }), nil
}

func (r *LocationRepo) ListAvailableByType(_ context.Context, t entity.LocationType) ([]*entity.WarehouseLocation, error) {
	return r.filter(func(_ *state, l entity.WarehouseLocation) bool { return l.Type == t && !l.Occupied }), nil
}

func (r *LocationRepo) ListWithSpace(_ context.Context, ratio decimal.Decimal) ([]*entity.WarehouseLocation, error) {
	return r.filter(func(_ *state, l entity.WarehouseLocation) bool {
		return l.CurrentWeight.LessThan(l.MaxWeight.Mul(ratio))
	}), nil
}

func (r *LocationRepo) ListHoldingProduct(_ context.Context, productID string) ([]*entity.WarehouseLocation, error) {
	return r.filter(func(st *state, l entity.WarehouseLocation) bool {
		for _, it := range st.items {
			if it.LocationID == l.ID && it.ProductID == productID {
				return true
			}
		}
		return false
	}), nil
}

func (r *LocationRepo) UpdateLoad(_ context.Context, id string, currentWeight decimal.Decimal, occupied bool) error {
	return r.d.write(func(st *state) error {
		l, ok := st.locations[id]
		if !ok {
			return domain.ErrNotFound
		}
		l.CurrentWeight = currentWeight
		l.Occupied = occupied
		st.locations[id] = l
		return nil
	})
}

func (r *LocationRepo) filter(keep func(*state, entity.WarehouseLocation) bool) []*entity.WarehouseLocation {
	var out []*entity.WarehouseLocation
	r.d.read(func(st *state) {
		for _, l := range st.locations {
			if keep(st, l) {
				l := l
				out = append(out, &l)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Aisle != b.Aisle {
			return a.Aisle < b.Aisle
		}
		if a.Rack != b.Rack {
			return a.Rack < b.Rack
		}
		if a.Shelf != b.Shelf {
			return a.Shelf < b.Shelf
		}
		return a.Bin < b.Bin
	})
	return out
}
