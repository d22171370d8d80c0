package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	skuErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "products_sku_key"})

	assert.True(t, isUniqueViolation(skuErr, ""))
	assert.True(t, isUniqueViolation(skuErr, "products_sku_key"))
	assert.False(t, isUniqueViolation(skuErr, "orders_order_number_key"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("timeout"), ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(errors.New("x")))
}

func TestNullableYLimit(t *testing.T) {
	assert.Nil(t, nullable(""))
	if assert.NotNil(t, nullable("abc")) {
		assert.Equal(t, "abc", *nullable("abc"))
	}
	assert.Nil(t, limitClause(0))
	assert.Nil(t, limitClause(-1))
	assert.Equal(t, 20, limitClause(20))
}

func TestSchemaEmbebido(t *testing.T) {
	for _, table := range []string{"products", "warehouse_locations", "inventory_items", "inventory_history", "orders", "order_items"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
