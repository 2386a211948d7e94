package handler

import "github.com/PLZ-test/wms/internal/domain/shared"

// dtoFilter builds a repository filter from raw pagination parameters,
// falling back to the defaults for zero values
func dtoFilter(page, pageSize int) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	return filter
}
