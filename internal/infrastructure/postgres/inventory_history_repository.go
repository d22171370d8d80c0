package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.InventoryHistoryRepository = (*InventoryHistoryRepo)(nil)

const historyColumns = `id, product_id, COALESCE(inventory_item_id::text, ''), action_type, quantity,
	COALESCE(source_location_id::text, ''), COALESCE(destination_location_id::text, ''),
	user_id, username, batch_number, notes, occurred_at`

// InventoryHistoryRepo historial append-only sobre PostgreSQL.
type InventoryHistoryRepo struct {
	q Querier
}

func NewInventoryHistoryRepository(q Querier) *InventoryHistoryRepo {
	return &InventoryHistoryRepo{q: q}
}

func scanHistory(row pgx.Row) (*entity.InventoryHistory, error) {
	var h entity.InventoryHistory
	var action string
	err := row.Scan(&h.ID, &h.ProductID, &h.InventoryItemID, &action, &h.Quantity,
		&h.SourceLocationID, &h.DestinationLocationID, &h.UserID, &h.Username, &h.BatchNumber, &h.Notes, &h.Timestamp)
	if err != nil {
		return nil, err
	}
	h.ActionType = entity.ActionType(action)
	return &h, nil
}

func (r *InventoryHistoryRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryHistory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.InventoryHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

func (r *InventoryHistoryRepo) Create(ctx context.Context, h *entity.InventoryHistory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_history (id, product_id, inventory_item_id, action_type, quantity,
			source_location_id, destination_location_id, user_id, username, batch_number, notes, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		h.ID, h.ProductID, nullable(h.InventoryItemID), string(h.ActionType), h.Quantity,
		nullable(h.SourceLocationID), nullable(h.DestinationLocationID),
		h.UserID, h.Username, h.BatchNumber, h.Notes, h.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert inventory history: %w", err)
	}
	return nil
}

func (r *InventoryHistoryRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.InventoryHistory, error) {
	return r.many(ctx, "list history by product", `
		SELECT `+historyColumns+`
		FROM inventory_history
		WHERE product_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2`, productID, limitClause(limit))
}

func (r *InventoryHistoryRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.InventoryHistory, error) {
	return r.many(ctx, "list history by item", `
		SELECT `+historyColumns+`
		FROM inventory_history
		WHERE inventory_item_id = $1
		ORDER BY occurred_at DESC, id DESC`, itemID)
}

func (r *InventoryHistoryRepo) ListByProductBetween(ctx context.Context, productID string, from, to time.Time) ([]*entity.InventoryHistory, error) {
	return r.many(ctx, "list history by period", `
		SELECT `+historyColumns+`
		FROM inventory_history
		WHERE product_id = $1 AND occurred_at BETWEEN $2 AND $3
		ORDER BY occurred_at DESC, id DESC`, productID, from, to)
}
