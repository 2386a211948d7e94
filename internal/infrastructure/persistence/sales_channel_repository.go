package persistence

import (
	"context"
	"errors"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSalesChannelRepository implements masterdata.SalesChannelRepository using GORM
type GormSalesChannelRepository struct {
	db *gorm.DB
}

// NewGormSalesChannelRepository creates a new GormSalesChannelRepository
func NewGormSalesChannelRepository(db *gorm.DB) *GormSalesChannelRepository {
	return &GormSalesChannelRepository{db: db}
}

// FindByID finds a sales channel by its ID
func (r *GormSalesChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.SalesChannel, error) {
	var ch masterdata.SalesChannel
	if err := r.db.WithContext(ctx).First(&ch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// FindByName finds a sales channel by its unique name
func (r *GormSalesChannelRepository) FindByName(ctx context.Context, name string) (*masterdata.SalesChannel, error) {
	var ch masterdata.SalesChannel
	if err := r.db.WithContext(ctx).First(&ch, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ch, nil
}

// GetOrCreate returns the channel with the given name, creating it if absent.
// The insert ignores unique-constraint conflicts and the row is re-read, so
// concurrent calls for a new name converge on a single row.
func (r *GormSalesChannelRepository) GetOrCreate(ctx context.Context, name string) (*masterdata.SalesChannel, error) {
	ch, err := masterdata.NewSalesChannel(name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(ch).Error; err != nil {
		return nil, err
	}
	return r.FindByName(ctx, name)
}

// FindAll lists sales channels
func (r *GormSalesChannelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.SalesChannel, error) {
	var channels []masterdata.SalesChannel
	query := r.db.WithContext(ctx).Model(&masterdata.SalesChannel{})
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if err := applyFilter(query, filter, NamedSortFields).Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}
