package persistence

import (
	"context"
	"errors"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChannelCredentialRepository implements masterdata.ChannelCredentialRepository using GORM
type GormChannelCredentialRepository struct {
	db *gorm.DB
}

// NewGormChannelCredentialRepository creates a new GormChannelCredentialRepository
func NewGormChannelCredentialRepository(db *gorm.DB) *GormChannelCredentialRepository {
	return &GormChannelCredentialRepository{db: db}
}

// FindByID finds a credential by its ID
func (r *GormChannelCredentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.ChannelCredential, error) {
	var cred masterdata.ChannelCredential
	if err := r.db.WithContext(ctx).Preload("Shipper").First(&cred, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// FindActive returns all active credentials with their shippers preloaded
func (r *GormChannelCredentialRepository) FindActive(ctx context.Context) ([]masterdata.ChannelCredential, error) {
	var creds []masterdata.ChannelCredential
	if err := r.db.WithContext(ctx).
		Preload("Shipper").
		Where("is_active = ?", true).
		Order("shipper_id, channel_type").
		Find(&creds).Error; err != nil {
		return nil, err
	}
	return creds, nil
}

// FindActiveForShipper returns a shipper's active credentials, optionally
// narrowed to one channel type
func (r *GormChannelCredentialRepository) FindActiveForShipper(ctx context.Context, shipperID uuid.UUID, channelType *masterdata.ChannelType) ([]masterdata.ChannelCredential, error) {
	query := r.db.WithContext(ctx).
		Preload("Shipper").
		Where("shipper_id = ? AND is_active = ?", shipperID, true)
	if channelType != nil {
		query = query.Where("channel_type = ?", *channelType)
	}
	var creds []masterdata.ChannelCredential
	if err := query.Order("channel_type").Find(&creds).Error; err != nil {
		return nil, err
	}
	return creds, nil
}

// Save persists a credential
func (r *GormChannelCredentialRepository) Save(ctx context.Context, cred *masterdata.ChannelCredential) error {
	return r.db.WithContext(ctx).Omit("Shipper").Save(cred).Error
}

// Delete removes a credential
func (r *GormChannelCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&masterdata.ChannelCredential{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
