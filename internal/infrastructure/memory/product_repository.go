package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ d *db }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.d.write(func(st *state) error {
		for _, existing := range st.products {
			if existing.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		st.track(p.ID)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.d.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	r.d.read(func(st *state) {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	r.d.read(func(st *state) {
		for _, p := range st.products {
			if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
				continue
			}
			p := p
			out = append(out, &p)
		}
	})
	sortProducts(out)
	return page(out, f.Limit, f.Offset), nil
}

func (r *ProductRepo) Count(_ context.Context, category string) (int, error) {
	n := 0
	r.d.read(func(st *state) {
		for _, p := range st.products {
			if category == "" || strings.EqualFold(p.Category, category) {
				n++
			}
		}
	})
	return n, nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	var out []*entity.Product
	r.d.read(func(st *state) {
		for _, p := range st.products {
			if p.StockQuantity < threshold {
				p := p
				out = append(out, &p)
			}
		}
	})
	sortProducts(out)
	return out, nil
}

func (r *ProductRepo) StockByCategory(_ context.Context) ([]repository.CategoryStock, error) {
	totals := map[string]int{}
	r.d.read(func(st *state) {
		for _, p := range st.products {
			totals[p.Category] += p.StockQuantity
		}
	})
	out := make([]repository.CategoryStock, 0, len(totals))
	for c, q := range totals {
		out = append(out, repository.CategoryStock{Category: c, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.d.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) UpdateStockQuantity(_ context.Context, id string, quantity int) error {
	return r.d.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.StockQuantity = quantity
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.d.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		return nil
	})
}

func sortProducts(ps []*entity.Product) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].SKU < ps[j].SKU })
}

func page[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
