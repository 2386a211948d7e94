package order

import (
	"context"
	"time"

	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository persists orders and their line items
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	// FindByDate lists orders whose order date falls on the given day,
	// optionally narrowed to one status
	FindByDate(ctx context.Context, day time.Time, status *Status, filter shared.Filter) ([]Order, error)
	CountByDate(ctx context.Context, day time.Time, status *Status) (int64, error)

	// CreateWithItems persists the order and all of its items in one
	// transaction. A blank order number is assigned a generated YYYYMMDD-NNNN
	// number inside the same transaction; the unique index on order numbers
	// guarantees two concurrent creates never share a number.
	CreateWithItems(ctx context.Context, o *Order) error

	// ReplaceErrorOrder atomically deletes the superseded ERROR order and
	// creates the corrected order with its items. Used only by the
	// retry/correction path.
	ReplaceErrorOrder(ctx context.Context, errorOrderID uuid.UUID, corrected *Order) error

	// UpdateErrorPayload refreshes the diagnosis of an existing ERROR order
	// in place, keeping the same row
	UpdateErrorPayload(ctx context.Context, id uuid.UUID, payload *ErrorPayload) error

	// ExistsDuplicate reports whether a non-ERROR order matching the natural
	// key already exists. The shipper is matched by name.
	ExistsDuplicate(ctx context.Context, key DuplicateKey) (bool, error)

	// FindErrorByDuplicateKey returns an existing ERROR order matching the
	// natural key, or shared.ErrNotFound. Lets repeated submissions of the
	// same bad row refresh one diagnosis instead of piling up error rows.
	FindErrorByDuplicateKey(ctx context.Context, key DuplicateKey) (*Order, error)

	Save(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CollectionLogRepository persists the append-only collection audit trail
type CollectionLogRepository interface {
	Append(ctx context.Context, log *CollectionLog) error
	FindAll(ctx context.Context, filter shared.Filter) ([]CollectionLog, int64, error)
}
