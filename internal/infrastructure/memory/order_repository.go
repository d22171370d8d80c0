package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct{ d *db }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.d.write(func(st *state) error {
		for _, existing := range st.orders {
			if existing.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicateOrderNumber
			}
		}
		st.orders[o.ID] = copyOrder(*o)
		st.track(o.ID)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	r.d.read(func(st *state) {
		if o, ok := st.orders[id]; ok {
			c := copyOrder(o)
			out = &c
		}
	})
	return out, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) GetByNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	list := r.filter(func(o entity.Order) bool { return o.OrderNumber == orderNumber })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *OrderRepo) List(_ context.Context, limit, offset int) ([]*entity.Order, error) {
	return page(r.filter(func(entity.Order) bool { return true }), limit, offset), nil
}

func (r *OrderRepo) Count(_ context.Context) (int, error) {
	n := 0
	r.d.read(func(st *state) { n = len(st.orders) })
	return n, nil
}

func (r *OrderRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Order, error) {
	return r.filter(func(o entity.Order) bool { return o.CustomerID == customerID }), nil
}

func (r *OrderRepo) ListByStatus(_ context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	return r.filter(func(o entity.Order) bool { return o.Status == status }), nil
}

func (r *OrderRepo) ListByMinPriority(_ context.Context, minPriority int) ([]*entity.Order, error) {
	out := r.filter(func(o entity.Order) bool { return o.Priority >= minPriority })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error {
	return r.d.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = status
		o.UpdatedAt = updatedAt
		st.orders[id] = o
		return nil
	})
}

// filter devuelve copias, más recientes primero.
func (r *OrderRepo) filter(keep func(entity.Order) bool) []*entity.Order {
	var out []*entity.Order
	var seq map[string]int64
	r.d.read(func(st *state) {
		seq = make(map[string]int64)
		for id, o := range st.orders {
			if keep(o) {
				c := copyOrder(o)
				out = append(out, &c)
				seq[id] = st.seq[id]
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return seq[out[i].ID] > seq[out[j].ID]
	})
	return out
}
