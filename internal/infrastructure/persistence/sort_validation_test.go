package persistence

import (
	"context"
	"testing"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "name", ValidateSortField("name", NamedSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", NamedSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("secret_key", NamedSortFields, "created_at"))
	assert.Equal(t, "created_at",
		ValidateSortField("name; DROP TABLE orders", NamedSortFields, "created_at"))
}

func TestApplyFilter_RejectsUnlistedSortColumn(t *testing.T) {
	db := setupTestDB(t)

	// a subquery smuggled through order_by must never reach the SQL engine
	hostile := shared.Filter{
		OrderBy:  "(SELECT secret_key FROM channel_credentials LIMIT 1)",
		OrderDir: "asc",
		PageSize: 20,
		Page:     1,
	}

	var channels []masterdata.SalesChannel
	stmt := applyFilter(
		db.Session(&gorm.Session{DryRun: true}).Model(&masterdata.SalesChannel{}),
		hostile,
		NamedSortFields,
	).Find(&channels).Statement

	sql := stmt.SQL.String()
	assert.NotContains(t, sql, "secret_key")
	assert.Contains(t, sql, "ORDER BY created_at ASC")
}

func TestApplyFilter_WhitelistedSortColumnPasses(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSalesChannelRepository(db)
	ctx := context.Background()

	for _, name := range []string{"coupang", "naver", "auction"} {
		_, err := repo.GetOrCreate(ctx, name)
		require.NoError(t, err)
	}

	channels, err := repo.FindAll(ctx, shared.Filter{OrderBy: "name", OrderDir: "asc", PageSize: 10, Page: 1})
	require.NoError(t, err)
	require.Len(t, channels, 3)
	assert.Equal(t, "auction", channels[0].Name)
	assert.Equal(t, "naver", channels[2].Name)
}
