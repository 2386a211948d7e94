package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort direction to ASC or
// DESC. Returns "DESC" if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Returns the defaultField if the input is empty or not whitelisted;
// sort fields must never reach the SQL string unchecked.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains the base-entity columns every table carries
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// NamedSortFields covers the master-data tables sorted by display name
// (centers, shippers, sales channels, couriers)
var NamedSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// OrderSortFields contains allowed sort columns for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_no":       true,
	"order_date":     true,
	"status":         true,
	"recipient_name": true,
}

// CollectionLogSortFields contains allowed sort columns for collection logs
var CollectionLogSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"collected_at":  true,
	"status":        true,
	"total_count":   true,
	"success_count": true,
	"error_count":   true,
}

// MovementSortFields contains allowed sort columns for stock movements
var MovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"moved_at":   true,
	"type":       true,
	"quantity":   true,
}
