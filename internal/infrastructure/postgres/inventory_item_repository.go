package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

const (
	itemColumns = `id, product_id, location_id, quantity, batch_number, expiry_date, quarantined, last_counted_at, created_at`
	itemOrder   = ` ORDER BY created_at, id`
)

// InventoryItemRepo lotes físicos de inventario sobre PostgreSQL.
type InventoryItemRepo struct {
	q Querier
}

func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.ProductID, &it.LocationID, &it.Quantity, &it.BatchNumber,
		&it.ExpiryDate, &it.Quarantined, &it.LastCountedAt, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InventoryItemRepo) one(ctx context.Context, op, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return it, nil
}

func (r *InventoryItemRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *InventoryItemRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		it.ID, it.ProductID, it.LocationID, it.Quantity, it.BatchNumber,
		it.ExpiryDate, it.Quarantined, it.LastCountedAt, it.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("producto o ubicación inexistente")
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.one(ctx, "get inventory item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.one(ctx, "lock inventory item", `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryItemRepo) Update(ctx context.Context, it *entity.InventoryItem) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_items
		SET location_id = $2, quantity = $3, quarantined = $4, last_counted_at = $5
		WHERE id = $1`,
		it.ID, it.LocationID, it.Quantity, it.Quarantined, it.LastCountedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("ítem de inventario", it.ID)
	}
	return nil
}

func (r *InventoryItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

func (r *InventoryItemRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryItem, error) {
	return r.many(ctx, "list items by product",
		`SELECT `+itemColumns+` FROM inventory_items WHERE product_id = $1`+itemOrder, productID)
}

func (r *InventoryItemRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.InventoryItem, error) {
	return r.many(ctx, "list items by location",
		`SELECT `+itemColumns+` FROM inventory_items WHERE location_id = $1`+itemOrder, locationID)
}

func (r *InventoryItemRepo) ListAvailableForUpdate(ctx context.Context, productID string) ([]*entity.InventoryItem, error) {
	return r.many(ctx, "lock available items",
		`SELECT `+itemColumns+` FROM inventory_items WHERE product_id = $1 AND NOT quarantined`+itemOrder+` FOR UPDATE`, productID)
}

func (r *InventoryItemRepo) SumAvailable(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory_items WHERE product_id = $1 AND NOT quarantined`, productID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sum available: %w", err)
	}
	return n, nil
}

func (r *InventoryItemRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *InventoryItemRepo) ListExpiredBefore(ctx context.Context, t time.Time) ([]*entity.InventoryItem, error) {
	return r.many(ctx, "list expired items",
		`SELECT `+itemColumns+` FROM inventory_items WHERE expiry_date < $1 ORDER BY expiry_date, created_at`, t)
}

func (r *InventoryItemRepo) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]*entity.InventoryItem, error) {
	return r.many(ctx, "list expiring items",
		`SELECT `+itemColumns+` FROM inventory_items WHERE expiry_date BETWEEN $1 AND $2 ORDER BY expiry_date, created_at`, from, to)
}
