package persistence

import (
	"context"
	"errors"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCenterRepository implements masterdata.CenterRepository using GORM
type GormCenterRepository struct {
	db *gorm.DB
}

// NewGormCenterRepository creates a new GormCenterRepository
func NewGormCenterRepository(db *gorm.DB) *GormCenterRepository {
	return &GormCenterRepository{db: db}
}

// FindByID finds a center by its ID
func (r *GormCenterRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Center, error) {
	var center masterdata.Center
	if err := r.db.WithContext(ctx).First(&center, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &center, nil
}

// FindByName finds a center by its unique name
func (r *GormCenterRepository) FindByName(ctx context.Context, name string) (*masterdata.Center, error) {
	var center masterdata.Center
	if err := r.db.WithContext(ctx).First(&center, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &center, nil
}

// FindAll lists centers
func (r *GormCenterRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Center, error) {
	var centers []masterdata.Center
	query := r.db.WithContext(ctx).Model(&masterdata.Center{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(query, filter, NamedSortFields).Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

// Save persists a center
func (r *GormCenterRepository) Save(ctx context.Context, center *masterdata.Center) error {
	return r.db.WithContext(ctx).Save(center).Error
}

// Delete removes a center; shippers belonging to it cascade
func (r *GormCenterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.Center{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
