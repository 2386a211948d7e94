package masterdata

import (
	"github.com/PLZ-test/wms/internal/domain/shared"
)

// SalesChannel represents a named sales channel orders arrive from.
// Rows are created on demand by name during collection (get-or-create).
type SalesChannel struct {
	shared.BaseEntity
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

// NewSalesChannel creates a new sales channel
func NewSalesChannel(name string) (*SalesChannel, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CHANNEL_NAME", "Sales channel name cannot be empty")
	}
	return &SalesChannel{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Courier represents a parcel carrier
type Courier struct {
	shared.BaseEntity
	Name    string `gorm:"size:100;uniqueIndex;not null"`
	Contact string `gorm:"size:100"`
}

// NewCourier creates a new courier
func NewCourier(name, contact string) (*Courier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COURIER_NAME", "Courier name cannot be empty")
	}
	return &Courier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Contact:    contact,
	}, nil
}
