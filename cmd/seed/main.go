// seed aplica el esquema y puebla el almacén de demostración: pasillos A (BULK_STORAGE),
// B (PICKING), C (PACKING), D (RECEIVING) y E (SHIPPING), catálogo de productos,
// inventario inicial y pedidos de ejemplo. No hace nada si ya existen ubicaciones.
//
// Uso: go run ./cmd/seed [-products catalogo.csv] [-latin1] [-orders 10] [-seed 42]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/order"
	"github.com/jhoicas/wms-api/internal/application/ports"
	"github.com/jhoicas/wms-api/internal/application/usecase"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	domainorder "github.com/jhoicas/wms-api/internal/domain/order"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// area bloque de ubicaciones de un mismo tipo.
type area struct {
	aisles    []string
	racks     int
	shelves   int
	bins      int
	typ       entity.LocationType
	maxWeight string
}

var layout = []area{
	{aisles: []string{"A1", "A2", "A3"}, racks: 5, shelves: 4, bins: 2, typ: entity.LocationBulkStorage, maxWeight: "500"},
	{aisles: []string{"B1", "B2"}, racks: 4, shelves: 3, bins: 1, typ: entity.LocationPicking, maxWeight: "200"},
	{aisles: []string{"C1"}, racks: 3, shelves: 1, bins: 1, typ: entity.LocationPacking, maxWeight: "100"},
	{aisles: []string{"D1"}, racks: 2, shelves: 1, bins: 1, typ: entity.LocationReceiving, maxWeight: "400"},
	{aisles: []string{"E1"}, racks: 2, shelves: 1, bins: 1, typ: entity.LocationShipping, maxWeight: "400"},
}

func main() {
	productsCSV := flag.String("products", "", "CSV de productos (sku,name,description,weight,width,height,depth,category)")
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	numOrders := flag.Int("orders", 10, "pedidos de ejemplo a crear")
	seed := flag.Uint64("seed", 42, "semilla para cantidades y ubicaciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "wms-seed"})
	ctx := ports.WithActor(context.Background(), ports.Actor{Username: "System"})

	catalog := defaultCatalog()
	if *productsCSV != "" {
		f, err := os.Open(*productsCSV)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV de productos")
		}
		catalog, err = readCatalogCSV(f, *latin1)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("leer CSV de productos")
		}
	}

	var (
		tx    ports.TxRunner
		repos ports.Repos
	)
	if cfg.DB.Driver == "memory" {
		store := memory.NewStore()
		tx, repos = store, store.Repos()
		log.Warn().Msg("DB_DRIVER=memory: la siembra solo valida el flujo, nada persiste")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		tx, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	existing, err := repos.Locations.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar ubicaciones")
	}
	if len(existing) > 0 {
		log.Info().Int("locations", len(existing)).Msg("la base ya contiene datos, se omite la siembra")
		return
	}

	s := &seeder{
		locations: usecase.NewLocationUseCase(repos.Locations),
		products:  usecase.NewProductUseCase(tx, repos, log.Component("products")),
		inventory: inventory.NewUseCase(tx, repos, log.Component("inventory")),
		orders:    order.NewUseCase(tx, repos, nil, domainorder.Policy{}, log.Component("orders")),
		rnd:       rand.New(rand.NewPCG(*seed, *seed)),
	}

	start := time.Now()
	if err := s.run(ctx, catalog, *numOrders); err != nil {
		log.Fatal().Err(err).Msg("siembra")
	}
	log.Info().
		Int("locations", s.stats.locations).
		Int("products", s.stats.products).
		Int("items", s.stats.items).
		Int("orders", s.stats.orders).
		Dur("took", time.Since(start)).
		Msg("siembra completada")
}

type seeder struct {
	locations *usecase.LocationUseCase
	products  *usecase.ProductUseCase
	inventory *inventory.UseCase
	orders    *order.UseCase
	rnd       *rand.Rand
	stats     struct{ locations, products, items, orders int }
}

func (s *seeder) run(ctx context.Context, catalog []dto.CreateProductRequest, numOrders int) error {
	byType := map[entity.LocationType][]string{}
	for _, a := range layout {
		for _, aisle := range a.aisles {
			for r := 1; r <= a.racks; r++ {
				for sh := 1; sh <= a.shelves; sh++ {
					for b := 1; b <= a.bins; b++ {
						loc, err := s.locations.Create(ctx, dto.CreateLocationRequest{
							Aisle: aisle, Rack: fmt.Sprintf("%02d", r), Shelf: fmt.Sprintf("%02d", sh), Bin: fmt.Sprintf("%02d", b),
							Type: string(a.typ), MaxWeight: decimal.RequireFromString(a.maxWeight),
						})
						if err != nil {
							return fmt.Errorf("ubicación %s: %w", aisle, err)
						}
						byType[a.typ] = append(byType[a.typ], loc.ID)
						s.stats.locations++
					}
				}
			}
		}
	}

	products := make([]*dto.ProductResponse, 0, len(catalog))
	for _, req := range catalog {
		p, err := s.products.Create(ctx, req)
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return fmt.Errorf("producto %s: %w", req.SKU, err)
		}
		products = append(products, p)
		s.stats.products++
	}

	bulk, picking := byType[entity.LocationBulkStorage], byType[entity.LocationPicking]
	for _, p := range products {
		if err := s.stock(ctx, p, bulk, picking); err != nil {
			return fmt.Errorf("inventario %s: %w", p.SKU, err)
		}
	}

	for i := 1; i <= numOrders && len(products) > 0; i++ {
		if err := s.order(ctx, i, products); err != nil {
			return fmt.Errorf("pedido %d: %w", i, err)
		}
	}
	return nil
}

// stock reparte existencias como en una bodega real: bulto, picking, algo de stock bajo
// y ocasionalmente un lote en cuarentena.
func (s *seeder) stock(ctx context.Context, p *dto.ProductResponse, bulk, picking []string) error {
	expiry := func(d time.Duration) *time.Time {
		if p.Category != "Food" {
			return nil
		}
		t := time.Now().Add(d).Truncate(time.Second)
		return &t
	}
	const month = 30 * 24 * time.Hour

	add := func(loc string, qty int, prefix string, exp *time.Time) (*entity.InventoryItem, error) {
		it, err := s.inventory.AddInventory(ctx, inventory.AddInput{
			ProductID: p.ID, Quantity: qty, LocationID: loc,
			BatchNumber: fmt.Sprintf("%s%s-%03d", prefix, p.SKU, s.rnd.IntN(1000)), ExpiryDate: exp,
		})
		if err == nil {
			s.stats.items++
		}
		return it, err
	}

	if _, err := add(pick(s.rnd, bulk), 20+s.rnd.IntN(80), "B", expiry(6*month)); err != nil {
		return err
	}
	if _, err := add(pick(s.rnd, picking), 5+s.rnd.IntN(15), "P", expiry(6*month)); err != nil {
		return err
	}
	if s.rnd.IntN(2) == 0 && p.Category != "Furniture" {
		if _, err := add(pick(s.rnd, bulk), 3, "L", expiry(10*24*time.Hour)); err != nil {
			return err
		}
	}
	if s.rnd.IntN(10) < 2 {
		it, err := add(pick(s.rnd, bulk), 2+s.rnd.IntN(5), "Q", nil)
		if err != nil {
			return err
		}
		if _, err := s.inventory.QuarantineInventory(ctx, it.ID); err != nil {
			return err
		}
	}
	return nil
}

// order crea un pedido y lo avanza por la máquina de estados hasta un estado aleatorio.
func (s *seeder) order(ctx context.Context, n int, products []*dto.ProductResponse) error {
	lines := 1 + s.rnd.IntN(min(5, len(products)))
	chosen := s.rnd.Perm(len(products))[:lines]

	items := make([]order.CreateItemInput, 0, lines)
	for _, idx := range chosen {
		p := products[idx]
		items = append(items, order.CreateItemInput{
			ProductID: p.ID,
			Quantity:  1 + s.rnd.IntN(5),
			Price:     p.Weight.Mul(decimal.NewFromInt(10)).Add(decimal.NewFromInt(15)),
		})
	}
	o, err := s.orders.CreateOrder(ctx, order.CreateInput{
		OrderNumber:     fmt.Sprintf("ORD%d", 100+n),
		CustomerID:      fmt.Sprintf("%d", 1000+s.rnd.IntN(100)),
		ShippingAddress: fmt.Sprintf("Calle 123, Ciudad, País, %d", 10000+s.rnd.IntN(90000)),
		Priority:        1 + s.rnd.IntN(5),
		Items:           items,
	})
	if errors.Is(err, domain.ErrInsufficientStock) {
		return nil
	}
	if err != nil {
		return err
	}
	s.stats.orders++

	path := []entity.OrderStatus{
		entity.OrderProcessing, entity.OrderPicking, entity.OrderPacking, entity.OrderShipped, entity.OrderDelivered,
	}
	for _, st := range path[:s.rnd.IntN(len(path)+1)] {
		if _, err := s.orders.UpdateOrderStatus(ctx, o.ID, st); err != nil {
			return err
		}
	}
	if s.rnd.IntN(10) == 0 {
		if _, err := s.orders.CancelOrder(ctx, o.ID); err != nil && !errors.Is(err, domain.ErrOrderNotCancelable) {
			return err
		}
	}
	return nil
}

func pick(rnd *rand.Rand, ids []string) string {
	return ids[rnd.IntN(len(ids))]
}
