package persistence

import (
	"context"
	"errors"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCourierRepository implements masterdata.CourierRepository using GORM
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GormCourierRepository
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// FindByID finds a courier by its ID
func (r *GormCourierRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Courier, error) {
	var courier masterdata.Courier
	if err := r.db.WithContext(ctx).First(&courier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &courier, nil
}

// FindAll lists couriers
func (r *GormCourierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Courier, error) {
	var couriers []masterdata.Courier
	query := r.db.WithContext(ctx).Model(&masterdata.Courier{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(query, filter, NamedSortFields).Find(&couriers).Error; err != nil {
		return nil, err
	}
	return couriers, nil
}

// Save persists a courier
func (r *GormCourierRepository) Save(ctx context.Context, courier *masterdata.Courier) error {
	return r.db.WithContext(ctx).Save(courier).Error
}

// Delete removes a courier
func (r *GormCourierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.Courier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
