package stock

import (
	"context"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementTypeIn  MovementType = "IN"
	MovementTypeOut MovementType = "OUT"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// Movement records one inbound or outbound stock change for a product.
// Append-only; the product's on-hand quantity is adjusted in the same
// transaction that appends the movement.
type Movement struct {
	shared.BaseEntity
	ProductID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Product   *masterdata.Product `gorm:"constraint:OnDelete:CASCADE"`
	Type      MovementType        `gorm:"size:10;not null"`
	Quantity  int                 `gorm:"not null"`
	MovedAt   time.Time           `gorm:"not null;index"`
	Memo      string              `gorm:"size:255"`
}

// TableName overrides the table name for stock movements
func (Movement) TableName() string {
	return "stock_movements"
}

// NewMovement creates a stock movement record
func NewMovement(productID uuid.UUID, movementType MovementType, quantity int, memo string) (*Movement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be IN or OUT")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return &Movement{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Type:       movementType,
		Quantity:   quantity,
		MovedAt:    time.Now(),
		Memo:       memo,
	}, nil
}

// MovementRepository persists stock movements
type MovementRepository interface {
	Append(ctx context.Context, movement *Movement) error
	// Receive increases the product's on-hand stock and appends the matching
	// IN movement in one transaction
	Receive(ctx context.Context, productID uuid.UUID, quantity int, memo string) (*Movement, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Movement, error)
}

// ShipmentRepository performs the transactional outbound flow: for each order,
// deduct stock for every line item, append OUT movements, and transition the
// order to SHIPPED. The whole batch is one transaction; insufficient stock for
// any item aborts it all.
type ShipmentRepository interface {
	ShipOrders(ctx context.Context, orderIDs []uuid.UUID) (shippedOrderNos []string, err error)
}
