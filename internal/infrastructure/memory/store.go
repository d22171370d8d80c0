// Package memory implementa los repositorios en memoria de proceso.
// Se usa con DB_DRIVER=memory y como doble de prueba de los motores de reglas.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// Store mantiene el estado completo. Las transacciones se serializan con mu
// y se revierten restaurando una copia del estado.
type Store struct {
	mu sync.Mutex
	st *state
}

type state struct {
	products  map[string]entity.Product
	locations map[string]entity.WarehouseLocation
	items     map[string]entity.InventoryItem
	history   []entity.InventoryHistory
	orders    map[string]entity.Order
	seq       map[string]int64 // orden de inserción para desempates
	nextSeq   int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: &state{
		products:  map[string]entity.Product{},
		locations: map[string]entity.WarehouseLocation{},
		items:     map[string]entity.InventoryItem{},
		orders:    map[string]entity.Order{},
		seq:       map[string]int64{},
	}}
}

// Repos devuelve repositorios fuera de transacción (cada llamada toma el lock).
func (s *Store) Repos() ports.Repos {
	return s.repos(func() func() {
		s.mu.Lock()
		return s.mu.Unlock
	})
}

// Run ejecuta fn con acceso exclusivo; si fn falla el estado vuelve a la copia previa.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repos(func() func() { return func() {} })); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) repos(lock func() func()) ports.Repos {
	d := &db{store: s, lock: lock}
	return ports.Repos{
		Products:  &ProductRepo{d},
		Locations: &LocationRepo{d},
		Items:     &ItemRepo{d},
		History:   &HistoryRepo{d},
		Orders:    &OrderRepo{d},
	}
}

// db acceso al estado vigente con la estrategia de lock del contexto (tx o no).
type db struct {
	store *Store
	lock  func() func()
}

func (d *db) read(fn func(st *state)) {
	unlock := d.lock()
	defer unlock()
	fn(d.store.st)
}

func (d *db) write(fn func(st *state) error) error {
	unlock := d.lock()
	defer unlock()
	return fn(d.store.st)
}

func (st *state) track(id string) {
	st.nextSeq++
	st.seq[id] = st.nextSeq
}

func (st *state) clone() *state {
	c := &state{
		products:  make(map[string]entity.Product, len(st.products)),
		locations: make(map[string]entity.WarehouseLocation, len(st.locations)),
		items:     make(map[string]entity.InventoryItem, len(st.items)),
		history:   make([]entity.InventoryHistory, len(st.history)),
		orders:    make(map[string]entity.Order, len(st.orders)),
		seq:       make(map[string]int64, len(st.seq)),
		nextSeq:   st.nextSeq,
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.locations {
		c.locations[k] = v
	}
	for k, v := range st.items {
		c.items[k] = copyItem(v)
	}
	copy(c.history, st.history)
	for k, v := range st.orders {
		c.orders[k] = copyOrder(v)
	}
	for k, v := range st.seq {
		c.seq[k] = v
	}
	return c
}

func copyItem(it entity.InventoryItem) entity.InventoryItem {
	if it.ExpiryDate != nil {
		t := *it.ExpiryDate
		it.ExpiryDate = &t
	}
	if it.LastCountedAt != nil {
		t := *it.LastCountedAt
		it.LastCountedAt = &t
	}
	return it
}

func copyOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return o
}
