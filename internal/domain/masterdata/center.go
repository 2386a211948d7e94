package masterdata

import (
	"github.com/PLZ-test/wms/internal/domain/shared"
)

// Center represents a fulfillment center that shippers belong to
type Center struct {
	shared.BaseEntity
	Name    string `gorm:"size:100;uniqueIndex;not null"`
	Address string `gorm:"size:255"`
}

// NewCenter creates a new fulfillment center
func NewCenter(name, address string) (*Center, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CENTER_NAME", "Center name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CENTER_NAME", "Center name cannot exceed 100 characters")
	}
	return &Center{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    address,
	}, nil
}
