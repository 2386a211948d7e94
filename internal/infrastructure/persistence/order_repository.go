package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNo finds an order with its items by order number
func (r *GormOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "order_no = ?", orderNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByDate lists orders whose order date falls on the given day
func (r *GormOrderRepository) FindByDate(ctx context.Context, day time.Time, status *order.Status, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.dateQuery(ctx, day, status).Preload("Items")
	if err := applyFilter(query, filter, OrderSortFields).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByDate counts orders whose order date falls on the given day
func (r *GormOrderRepository) CountByDate(ctx context.Context, day time.Time, status *order.Status) (int64, error) {
	var count int64
	if err := r.dateQuery(ctx, day, status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) dateQuery(ctx context.Context, day time.Time, status *order.Status) *gorm.DB {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	query := r.db.WithContext(ctx).Model(&order.Order{}).
		Where("order_date >= ? AND order_date < ?", start, start.AddDate(0, 0, 1))
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	return query
}

// CreateWithItems persists the order and all of its items in one transaction,
// assigning a generated day-sequence order number when the order carries none.
// The unique index on order numbers backstops concurrent generation; a
// collision rolls the transaction back and a fresh sequence is retried.
func (r *GormOrderRepository) CreateWithItems(ctx context.Context, o *order.Order) error {
	generated := o.OrderNo == ""
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return createWithItemsTx(tx, o)
		})
		if generated && errors.Is(err, gorm.ErrDuplicatedKey) {
			o.OrderNo = ""
			continue
		}
		return err
	}
	return err
}

func createWithItemsTx(tx *gorm.DB, o *order.Order) error {
	if o.OrderNo == "" {
		orderNo, err := nextOrderNo(tx, o.OrderDate)
		if err != nil {
			return err
		}
		o.OrderNo = orderNo
	}

	items := o.Items
	o.Items = nil
	if err := tx.Omit("Shipper", "Channel").Create(o).Error; err != nil {
		o.Items = items
		return err
	}
	for i := range items {
		items[i].OrderID = o.ID
	}
	if len(items) > 0 {
		if err := tx.Omit("Product").Create(&items).Error; err != nil {
			o.Items = items
			return err
		}
	}
	o.Items = items
	return nil
}

// nextOrderNo computes the next YYYYMMDD-NNNN number for the order's day from
// the highest number already stored for that prefix. Sequences are zero-padded
// to four digits, so past 9999 a plain string sort would rank "10000" below
// "9999"; ordering by length first keeps the longer, larger suffix on top.
func nextOrderNo(tx *gorm.DB, day time.Time) (string, error) {
	prefix := order.OrderNoPrefix(day)
	var last string
	err := tx.Model(&order.Order{}).
		Where("order_no LIKE ?", prefix+"-%").
		Order("length(order_no) DESC, order_no DESC").
		Limit(1).
		Pluck("order_no", &last).Error
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		if idx := strings.LastIndex(last, "-"); idx >= 0 {
			if n, err := strconv.Atoi(last[idx+1:]); err == nil {
				seq = n + 1
			}
		}
	}
	return order.FormatOrderNo(day, seq), nil
}

// ReplaceErrorOrder atomically deletes the superseded ERROR order and creates
// the corrected order with its items
func (r *GormOrderRepository) ReplaceErrorOrder(ctx context.Context, errorOrderID uuid.UUID, corrected *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale order.Order
		if err := tx.First(&stale, "id = ?", errorOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if stale.Status != order.StatusError {
			return shared.ErrInvalidState
		}
		if err := tx.Where("order_id = ?", errorOrderID).Delete(&order.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&order.Order{}, "id = ?", errorOrderID).Error; err != nil {
			return err
		}
		return createWithItemsTx(tx, corrected)
	})
}

// UpdateErrorPayload refreshes the diagnosis of an existing ERROR order in place
func (r *GormOrderRepository) UpdateErrorPayload(ctx context.Context, id uuid.UUID, payload *order.ErrorPayload) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o order.Order
		if err := tx.First(&o, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}
		if err := o.RefreshError(payload); err != nil {
			return err
		}
		return tx.Model(&o).Select("error", "updated_at").Updates(&o).Error
	})
}

// ExistsDuplicate reports whether a non-ERROR order matching the natural key
// already exists.
func (r *GormOrderRepository) ExistsDuplicate(ctx context.Context, key order.DuplicateKey) (bool, error) {
	var count int64
	err := r.duplicateQuery(ctx, key).
		Where("status <> ?", order.StatusError).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindErrorByDuplicateKey returns an existing ERROR order matching the natural key
func (r *GormOrderRepository) FindErrorByDuplicateKey(ctx context.Context, key order.DuplicateKey) (*order.Order, error) {
	var o order.Order
	err := r.duplicateQuery(ctx, key).
		Where("status = ?", order.StatusError).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// duplicateQuery matches the natural key against the denormalized shipper
// name on the order row. ERROR orders for unknown shippers carry no shipper
// reference at all, so a join against the shippers table would never see them.
func (r *GormOrderRepository) duplicateQuery(ctx context.Context, key order.DuplicateKey) *gorm.DB {
	return r.db.WithContext(ctx).Model(&order.Order{}).
		Where("shipper_name = ?", key.ShipperName).
		Where("recipient_name = ?", key.RecipientName).
		Where("address = ?", key.Address).
		Where("recipient_phone = ?", key.RecipientPhone)
}

// Save persists changes to an existing order
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(o).Error
}

// Delete removes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.Item{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
