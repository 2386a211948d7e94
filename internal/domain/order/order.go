package order

import (
	"fmt"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the status of an order
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCanceled   Status = "CANCELED"
	StatusError      Status = "ERROR"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled, StatusError:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// ERROR transitions to PENDING only through the retry/correction path.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusShipped || target == StatusCanceled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCanceled
	case StatusShipped:
		return target == StatusDelivered
	case StatusError:
		return target == StatusPending || target == StatusCanceled
	case StatusDelivered, StatusCanceled:
		return false
	}
	return false
}

// ErrorPayload is the structured diagnosis carried by an ERROR order. It keeps
// the full original raw order so a correction UI can re-offer every original
// value without data loss.
type ErrorPayload struct {
	Message string    `json:"message"`
	Fields  []string  `json:"fields"`
	Raw     *RawOrder `json:"raw,omitempty"`
}

// IsEmpty reports whether the payload carries no diagnosis
func (p *ErrorPayload) IsEmpty() bool {
	return p == nil || (p.Message == "" && len(p.Fields) == 0)
}

// Order represents a persisted order. Shipper and sales channel references are
// weak: deleting the master record nulls the reference, never the order.
type Order struct {
	shared.BaseEntity
	OrderNo   string    `gorm:"size:100;uniqueIndex;not null"`
	OrderDate time.Time `gorm:"not null;index"`

	ShipperID *uuid.UUID               `gorm:"type:uuid;index"`
	Shipper   *masterdata.Shipper      `gorm:"constraint:OnDelete:SET NULL"`
	ChannelID *uuid.UUID               `gorm:"type:uuid;index"`
	Channel   *masterdata.SalesChannel `gorm:"constraint:OnDelete:SET NULL"`

	// ShipperName is denormalized from the source row. Duplicate detection
	// keys on it, and it must keep working when the shipper reference is nil
	// (unknown shipper on an ERROR order) or nulled by a master-data delete.
	ShipperName string `gorm:"size:100;index"`

	RecipientName  string `gorm:"size:100"`
	RecipientPhone string `gorm:"size:20"`
	Address        string `gorm:"size:255"`
	Postcode       string `gorm:"size:10"`
	DeliveryMemo   string `gorm:"type:text"`

	Status Status        `gorm:"size:20;not null;default:'PENDING';index"`
	Error  *ErrorPayload `gorm:"type:text;serializer:json"`

	Items []Item `gorm:"foreignKey:OrderID"`
}

// Item is one line of an order. The product reference is protected: a product
// cannot be deleted while order items reference it.
type Item struct {
	shared.BaseEntity
	OrderID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Product   *masterdata.Product `gorm:"constraint:OnDelete:RESTRICT"`
	Quantity  int                 `gorm:"not null"`
}

// TableName overrides the table name for order items
func (Item) TableName() string {
	return "order_items"
}

// NewItem creates an order line item
func NewItem(orderID, productID uuid.UUID, quantity int) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// New creates an order in PENDING status. The order number may be empty; the
// repository assigns a generated one at insert time.
func New(orderNo string, orderDate time.Time, shipperID, channelID uuid.UUID) (*Order, error) {
	if len(orderNo) > 100 {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Order number cannot exceed 100 characters")
	}
	if orderDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_ORDER_DATE", "Order date is required")
	}
	o := &Order{
		BaseEntity: shared.NewBaseEntity(),
		OrderNo:    orderNo,
		OrderDate:  orderDate,
		Status:     StatusPending,
	}
	if shipperID != uuid.Nil {
		o.ShipperID = &shipperID
	}
	if channelID != uuid.Nil {
		o.ChannelID = &channelID
	}
	return o, nil
}

// SetRecipient sets the delivery recipient fields
func (o *Order) SetRecipient(name, phone, address, postcode, memo string) {
	o.RecipientName = name
	o.RecipientPhone = phone
	o.Address = address
	o.Postcode = postcode
	o.DeliveryMemo = memo
	o.UpdatedAt = time.Now()
}

// MarkError flips the order to ERROR with a structured diagnosis. An ERROR
// order always carries a non-empty payload; marking with an empty one fails.
func (o *Order) MarkError(payload *ErrorPayload) error {
	if payload.IsEmpty() {
		return shared.NewDomainError("EMPTY_ERROR_PAYLOAD", "An ERROR order must carry a diagnosis")
	}
	o.Status = StatusError
	o.Error = payload
	o.UpdatedAt = time.Now()
	return nil
}

// RefreshError replaces the diagnosis of an order already in ERROR status.
// A failed correction attempt must leave the current diagnosis, never a stale
// one.
func (o *Order) RefreshError(payload *ErrorPayload) error {
	if o.Status != StatusError {
		return shared.ErrInvalidState
	}
	return o.MarkError(payload)
}

// TransitionTo moves the order to the target status, clearing the error
// payload when leaving ERROR
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	if target != StatusError {
		o.Error = nil
	}
	o.UpdatedAt = time.Now()
	return nil
}

// IsError reports whether the order is in ERROR status
func (o *Order) IsError() bool {
	return o.Status == StatusError
}

// OrderNoPrefix returns the date prefix generated order numbers carry for the
// given day
func OrderNoPrefix(day time.Time) string {
	return day.Format("20060102")
}

// FormatOrderNo builds a generated order number: YYYYMMDD-NNNN with a 4-digit,
// zero-padded, per-day sequence
func FormatOrderNo(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%04d", OrderNoPrefix(day), seq)
}
