package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/PLZ-test/wms/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentRepository implements stock.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// ShipOrders deducts stock, appends OUT movements and marks every order
// SHIPPED in a single transaction. Insufficient stock for any line item
// aborts the whole batch.
func (r *GormShipmentRepository) ShipOrders(ctx context.Context, orderIDs []uuid.UUID) ([]string, error) {
	var shipped []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, orderID := range orderIDs {
			orderNo, err := shipOne(tx, orderID)
			if err != nil {
				return err
			}
			shipped = append(shipped, orderNo)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shipped, nil
}

func shipOne(tx *gorm.DB, orderID uuid.UUID) (string, error) {
	var o order.Order
	if err := tx.Preload("Items").First(&o, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	if err := o.TransitionTo(order.StatusShipped); err != nil {
		return "", fmt.Errorf("order %s: %w", o.OrderNo, err)
	}

	for _, item := range o.Items {
		if err := deduct(tx, o.OrderNo, item.ProductID, item.Quantity); err != nil {
			return "", err
		}

		movement, err := stock.NewMovement(item.ProductID, stock.MovementTypeOut, item.Quantity, "shipment "+o.OrderNo)
		if err != nil {
			return "", err
		}
		if err := tx.Omit("Product").Create(movement).Error; err != nil {
			return "", err
		}
	}

	if err := tx.Model(&o).Select("status", "error", "updated_at").Updates(&o).Error; err != nil {
		return "", err
	}
	return o.OrderNo, nil
}

// deduct performs a guarded decrement so a concurrent shipment can never push
// on-hand stock negative. Zero rows affected means the product is missing or
// short on stock; the row is read to tell the two apart.
func deduct(tx *gorm.DB, orderNo string, productID uuid.UUID, quantity int) error {
	result := tx.Model(&masterdata.Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var product masterdata.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order %s: product %s: %w", orderNo, productID, shared.ErrNotFound)
		}
		return err
	}
	return fmt.Errorf("order %s, product %s: %w", orderNo, product.Name, shared.ErrInsufficientStock)
}
