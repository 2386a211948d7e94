package persistence

import (
	"context"

	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCollectionLogRepository implements order.CollectionLogRepository using GORM
type GormCollectionLogRepository struct {
	db *gorm.DB
}

// NewGormCollectionLogRepository creates a new GormCollectionLogRepository
func NewGormCollectionLogRepository(db *gorm.DB) *GormCollectionLogRepository {
	return &GormCollectionLogRepository{db: db}
}

// Append records one collection attempt. Logs are never updated.
func (r *GormCollectionLogRepository) Append(ctx context.Context, log *order.CollectionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindAll lists collection logs newest first with the total count
func (r *GormCollectionLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.CollectionLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&order.CollectionLog{})

	if shipperID, ok := filter.Filters["shipper_id"]; ok {
		query = query.Where("shipper_id = ?", shipperID)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.OrderBy == "" {
		filter.OrderBy = "collected_at"
		filter.OrderDir = "desc"
	}

	var logs []order.CollectionLog
	if err := applyFilter(query.Preload("Shipper"), filter, CollectionLogSortFields).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
