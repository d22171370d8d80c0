package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, weight, width, height, depth, category, stock_quantity, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Weight, &p.Width, &p.Height, &p.Depth,
		&p.Category, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) one(ctx context.Context, op, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *ProductRepo) many(ctx context.Context, op, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto. SKU repetido -> domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Weight, p.Width, p.Height, p.Depth,
		p.Category, p.StockQuantity, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "products_sku_key") {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.one(ctx, "get product", `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.one(ctx, "lock product", `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.one(ctx, "get product by sku", `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// List productos ordenados por SKU, filtrando por categoría si se indica.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR category = $1)
		ORDER BY sku
		LIMIT $2 OFFSET $3`
	return r.many(ctx, "list products", query, f.Category, limitClause(f.Limit), max(f.Offset, 0))
}

func (r *ProductRepo) Count(ctx context.Context, category string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE ($1 = '' OR category = $1)`, category).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ListLowStock productos con stock_quantity < threshold.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock_quantity < $1 ORDER BY stock_quantity, sku`
	return r.many(ctx, "list low stock", query, threshold)
}

func (r *ProductRepo) StockByCategory(ctx context.Context) ([]repository.CategoryStock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT category, COALESCE(SUM(stock_quantity), 0)
		FROM products
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	defer rows.Close()
	var out []repository.CategoryStock
	for rows.Next() {
		var c repository.CategoryStock
		if err := rows.Scan(&c.Category, &c.Quantity); err != nil {
			return nil, fmt.Errorf("stock by category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update persiste los campos editables. SKU y stock_quantity no se modifican aquí.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, weight = $4, width = $5, height = $6, depth = $7,
		    category = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Weight, p.Width, p.Height, p.Depth, p.Category, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto", p.ID)
	}
	return nil
}

func (r *ProductRepo) UpdateStockQuantity(ctx context.Context, id string, quantity int) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock_quantity = $2, updated_at = NOW() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrProductInUse, id)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto", id)
	}
	return nil
}
