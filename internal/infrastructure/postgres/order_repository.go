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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, customer_id, status, shipping_address, priority, created_at, updated_at`

// OrderRepo pedidos y sus líneas sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &status, &o.ShippingAddress, &o.Priority, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// Create inserta cabecera y líneas. Debe ejecutarse dentro de una transacción.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.OrderNumber, o.CustomerID, string(o.Status), o.ShippingAddress, o.Priority, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "orders_order_number_key") {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateOrderNumber, o.OrderNumber)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (id, order_id, product_id, product_sku, product_name, quantity, price, picked, packed, line_no)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, o.ID, it.ProductID, it.ProductSKU, it.ProductName, it.Quantity, it.Price, it.Picked, it.Packed, i+1,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range o.Items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) one(ctx context.Context, op, query string, args ...any) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems carga las líneas de todos los pedidos con una sola consulta.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, id, product_id, product_sku, product_name, quantity, price, picked, packed
		FROM order_items
		WHERE order_id::text = ANY($1)
		ORDER BY order_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ID, &it.ProductID, &it.ProductSKU, &it.ProductName,
			&it.Quantity, &it.Price, &it.Picked, &it.Packed); err != nil {
			return fmt.Errorf("load order items: %w", err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.one(ctx, "get order", `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.one(ctx, "lock order", `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return r.one(ctx, "get order by number", `SELECT `+orderColumns+` FROM orders WHERE order_number = $1`, orderNumber)
}

func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	return r.many(ctx, "list orders",
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limitClause(limit), max(offset, 0))
}

func (r *OrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Order, error) {
	return r.many(ctx, "list orders by customer",
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC, id`, customerID)
}

func (r *OrderRepo) ListByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	return r.many(ctx, "list orders by status",
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC, id`, string(status))
}

func (r *OrderRepo) ListByMinPriority(ctx context.Context, minPriority int) ([]*entity.Order, error) {
	return r.many(ctx, "list orders by priority",
		`SELECT `+orderColumns+` FROM orders WHERE priority >= $1 ORDER BY priority DESC, created_at DESC, id`, minPriority)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("pedido", id)
	}
	return nil
}
