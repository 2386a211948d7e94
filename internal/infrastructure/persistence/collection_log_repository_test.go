package persistence

import (
	"context"
	"testing"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCollectionLogRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCollectionLogRepository(db)
	ctx := context.Background()
	shipper := seedShipper(t, db, "acme")
	other := seedShipper(t, db, "globex")

	ok, err := order.NewCollectionLog(shipper.ID, masterdata.ChannelTypeCoupang, 5, 5, 0, "")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, ok))

	partial, err := order.NewCollectionLog(shipper.ID, masterdata.ChannelTypeNaver, 5, 3, 2, "2 rows failed validation")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, partial))

	failed, err := order.NewFailedCollectionLog(other.ID, masterdata.ChannelTypeCoupang, "auth failed")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, failed))

	logs, total, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 3)

	filter := shared.DefaultFilter()
	filter.Filters["shipper_id"] = shipper.ID
	logs, total, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	filter = shared.DefaultFilter()
	filter.Filters["status"] = order.CollectionStatusFailed
	logs, total, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "auth failed", logs[0].ErrorMessage)
	require.NotNil(t, logs[0].Shipper)
	assert.Equal(t, "globex", logs[0].Shipper.Name)
}
