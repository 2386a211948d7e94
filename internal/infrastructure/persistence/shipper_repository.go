package persistence

import (
	"context"
	"errors"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipperRepository implements masterdata.ShipperRepository using GORM
type GormShipperRepository struct {
	db *gorm.DB
}

// NewGormShipperRepository creates a new GormShipperRepository
func NewGormShipperRepository(db *gorm.DB) *GormShipperRepository {
	return &GormShipperRepository{db: db}
}

// FindByID finds a shipper by its ID
func (r *GormShipperRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Shipper, error) {
	var shipper masterdata.Shipper
	if err := r.db.WithContext(ctx).First(&shipper, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipper, nil
}

// FindByName finds a shipper by its unique name
func (r *GormShipperRepository) FindByName(ctx context.Context, name string) (*masterdata.Shipper, error) {
	var shipper masterdata.Shipper
	if err := r.db.WithContext(ctx).First(&shipper, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipper, nil
}

// FindAll lists shippers
func (r *GormShipperRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Shipper, error) {
	var shippers []masterdata.Shipper
	query := r.db.WithContext(ctx).Model(&masterdata.Shipper{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if centerID, ok := filter.Filters["center_id"]; ok {
		query = query.Where("center_id = ?", centerID)
	}
	if err := applyFilter(query, filter, NamedSortFields).Find(&shippers).Error; err != nil {
		return nil, err
	}
	return shippers, nil
}

// Save persists a shipper
func (r *GormShipperRepository) Save(ctx context.Context, shipper *masterdata.Shipper) error {
	return r.db.WithContext(ctx).Save(shipper).Error
}

// Delete removes a shipper
func (r *GormShipperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.Shipper{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
