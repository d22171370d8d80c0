package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const (
	locationColumns = `l.id, l.aisle, l.rack, l.shelf, l.bin, l.location_type, l.occupied, l.max_weight, l.current_weight`
	locationOrder   = ` ORDER BY l.aisle, l.rack, l.shelf, l.bin`
)

// LocationRepo ubicaciones del almacén sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func scanLocation(row pgx.Row) (*entity.WarehouseLocation, error) {
	var l entity.WarehouseLocation
	var typ string
	if err := row.Scan(&l.ID, &l.Aisle, &l.Rack, &l.Shelf, &l.Bin, &typ, &l.Occupied, &l.MaxWeight, &l.CurrentWeight); err != nil {
		return nil, err
	}
	l.Type = entity.LocationType(typ)
	return &l, nil
}

func (r *LocationRepo) one(ctx context.Context, op, query string, args ...any) (*entity.WarehouseLocation, error) {
	l, err := scanLocation(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

func (r *LocationRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.WarehouseLocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.WarehouseLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Create inserta la ubicación. Código pasillo-rack-estante-bin repetido -> domain.ErrDuplicate.
func (r *LocationRepo) Create(ctx context.Context, l *entity.WarehouseLocation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouse_locations (id, aisle, rack, shelf, bin, location_type, occupied, max_weight, current_weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.Aisle, l.Rack, l.Shelf, l.Bin, string(l.Type), l.Occupied, l.MaxWeight, l.CurrentWeight,
	)
	if err != nil {
		if isUniqueViolation(err, "warehouse_locations_code_key") {
			return fmt.Errorf("%w: ubicación %s", domain.ErrDuplicate, l.Code())
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.WarehouseLocation, error) {
	return r.one(ctx, "get location", `SELECT `+locationColumns+` FROM warehouse_locations l WHERE l.id = $1`, id)
}

func (r *LocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.WarehouseLocation, error) {
	return r.one(ctx, "lock location", `SELECT `+locationColumns+` FROM warehouse_locations l WHERE l.id = $1 FOR UPDATE`, id)
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.WarehouseLocation, error) {
	return r.many(ctx, "list locations", `SELECT `+locationColumns+` FROM warehouse_locations l`+locationOrder)
}

func (r *LocationRepo) ListByType(ctx context.Context, t entity.LocationType) ([]*entity.WarehouseLocation, error) {
	return r.many(ctx, "list locations by type",
		`SELECT `+locationColumns+` FROM warehouse_locations l WHERE l.location_type = $1`+locationOrder, string(t))
}

func (r *LocationRepo) ListAvailableByType(ctx context.Context, t entity.LocationType) ([]*entity.WarehouseLocation, error) {
	return r.many(ctx, "list available locations",
		`SELECT `+locationColumns+` FROM warehouse_locations l WHERE l.location_type = $1 AND NOT l.occupied`+locationOrder, string(t))
}

func (r *LocationRepo) ListWithSpace(ctx context.Context, ratio decimal.Decimal) ([]*entity.WarehouseLocation, error) {
	return r.many(ctx, "list locations with space",
		`SELECT `+locationColumns+` FROM warehouse_locations l WHERE l.current_weight < l.max_weight * $1`+locationOrder, ratio)
}

func (r *LocationRepo) ListHoldingProduct(ctx context.Context, productID string) ([]*entity.WarehouseLocation, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM warehouse_locations l
		WHERE EXISTS (SELECT 1 FROM inventory_items i WHERE i.location_id = l.id AND i.product_id = $1)` + locationOrder
	return r.many(ctx, "list locations holding product", query, productID)
}

func (r *LocationRepo) UpdateLoad(ctx context.Context, id string, currentWeight decimal.Decimal, occupied bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE warehouse_locations SET current_weight = $2, occupied = $3 WHERE id = $1`,
		id, currentWeight, occupied)
	if err != nil {
		return fmt.Errorf("update location load: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("ubicación", id)
	}
	return nil
}
