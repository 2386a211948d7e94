package persistence

import (
	"context"
	"errors"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements masterdata.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Product, error) {
	var product masterdata.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// ResolveIdentifier matches an identifier against both barcode and name within
// one shipper's catalog. Fetching two rows distinguishes a unique match from
// an ambiguous one without counting separately.
func (r *GormProductRepository) ResolveIdentifier(ctx context.Context, shipperID uuid.UUID, identifier string) (*masterdata.Product, error) {
	var products []masterdata.Product
	err := r.db.WithContext(ctx).
		Where("shipper_id = ?", shipperID).
		Where("barcode = ? OR name = ?", identifier, identifier).
		Limit(2).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	switch len(products) {
	case 0:
		return nil, shared.ErrNotFound
	case 1:
		return &products[0], nil
	default:
		return nil, masterdata.ErrProductAmbiguous
	}
}

// Search returns products whose name or barcode contains the term, scoped to
// a shipper
func (r *GormProductRepository) Search(ctx context.Context, shipperID uuid.UUID, term string, limit int) ([]masterdata.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	var products []masterdata.Product
	err := r.db.WithContext(ctx).
		Where("shipper_id = ?", shipperID).
		Where("name LIKE ? OR barcode LIKE ?", "%"+term+"%", "%"+term+"%").
		Order("name").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Save persists a product
func (r *GormProductRepository) Save(ctx context.Context, product *masterdata.Product) error {
	return r.db.WithContext(ctx).Omit("Shipper").Save(product).Error
}

// Delete removes a product unless any order line item still references it
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&order.Item{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return shared.ErrProtected
		}
		result := tx.Delete(&masterdata.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
