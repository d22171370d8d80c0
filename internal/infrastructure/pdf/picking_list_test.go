package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apporder "github.com/jhoicas/wms-api/internal/application/order"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

func TestRender_GeneraPDF(t *testing.T) {
	expiry := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	list := &apporder.PickingList{
		Order: &entity.Order{
			ID: "o-1", OrderNumber: "ORD-20250310-ABCD1234", CustomerID: "C-1",
			Status: entity.OrderPicking, ShippingAddress: "Calle 1 # 2-3", Priority: 2,
			Items: []entity.OrderItem{{ProductID: "p-1", ProductSKU: "ELEC001", ProductName: "Smartphone X",
				Quantity: 3, Price: decimal.RequireFromString("199.99")}},
		},
		GeneratedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		Lines: []apporder.PickLine{{
			ProductID: "p-1", ProductSKU: "ELEC001", ProductName: "Smartphone X", Quantity: 3,
			Picks: []apporder.Pick{
				{LocationID: "l-1", LocationCode: "A-1-1-1", BatchNumber: "L1", ExpiryDate: &expiry, Quantity: 2},
			},
			Shortfall: 1,
		}},
	}

	out, err := NewPickingListRenderer().Render(list)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "600", formatMoney("600"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
}
