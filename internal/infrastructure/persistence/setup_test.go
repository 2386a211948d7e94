package persistence

import (
	"testing"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/stock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&masterdata.Center{},
		&masterdata.Shipper{},
		&masterdata.ChannelCredential{},
		&masterdata.Product{},
		&masterdata.SalesChannel{},
		&masterdata.Courier{},
		&order.Order{},
		&order.Item{},
		&order.CollectionLog{},
		&stock.Movement{},
	)
	require.NoError(t, err)
	return db
}

// seedShipper creates a center and a shipper under it
func seedShipper(t *testing.T, db *gorm.DB, name string) *masterdata.Shipper {
	t.Helper()
	center, err := masterdata.NewCenter(name+" center", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(center).Error)

	shipper, err := masterdata.NewShipper(center.ID, name, "", "")
	require.NoError(t, err)
	require.NoError(t, db.Create(shipper).Error)
	return shipper
}

// seedProduct creates a product with initial stock in a shipper's catalog
func seedProduct(t *testing.T, db *gorm.DB, shipper *masterdata.Shipper, name, barcode string, qty int) *masterdata.Product {
	t.Helper()
	product, err := masterdata.NewProduct(shipper.ID, name, barcode, masterdata.BoxSizeSmall)
	require.NoError(t, err)
	if qty > 0 {
		require.NoError(t, product.AddStock(qty))
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
