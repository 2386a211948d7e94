package persistence

import (
	"context"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/PLZ-test/wms/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMovementRepository implements stock.MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append records a stock movement
func (r *GormMovementRepository) Append(ctx context.Context, movement *stock.Movement) error {
	return r.db.WithContext(ctx).Omit("Product").Create(movement).Error
}

// Receive bumps the product's on-hand stock and appends the IN movement in
// one transaction
func (r *GormMovementRepository) Receive(ctx context.Context, productID uuid.UUID, quantity int, memo string) (*stock.Movement, error) {
	movement, err := stock.NewMovement(productID, stock.MovementTypeIn, quantity, memo)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&masterdata.Product{}).
			Where("id = ?", productID).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", quantity),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Omit("Product").Create(movement).Error
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// FindByProduct lists movements for a product, newest first
func (r *GormMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]stock.Movement, error) {
	if filter.OrderBy == "" {
		filter.OrderBy = "moved_at"
		filter.OrderDir = "desc"
	}
	var movements []stock.Movement
	query := r.db.WithContext(ctx).Model(&stock.Movement{}).Where("product_id = ?", productID)
	if err := applyFilter(query, filter, MovementSortFields).Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
