package persistence

import (
	"github.com/PLZ-test/wms/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and ordering from a shared.Filter to a query.
// The sort field is validated against the entity's column whitelist before it
// is placed in the ORDER BY clause.
func applyFilter(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return query
}
