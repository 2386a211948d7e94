package masterdata

import (
	"time"

	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BoxSize classifies the packing box a product ships in
type BoxSize string

const (
	BoxSizeSmall  BoxSize = "S"
	BoxSizeMedium BoxSize = "M"
	BoxSizeLarge  BoxSize = "L"
	BoxSizeXLarge BoxSize = "XL"
)

// IsValid returns true if the box size is valid
func (b BoxSize) IsValid() bool {
	switch b {
	case BoxSizeSmall, BoxSizeMedium, BoxSizeLarge, BoxSizeXLarge:
		return true
	default:
		return false
	}
}

// Product represents a shipper-scoped catalog product.
// The same barcode is globally unique, but product names are only meaningful
// within one shipper's catalog; order lines resolve identifiers per shipper.
type Product struct {
	shared.BaseEntity
	ShipperID uuid.UUID `gorm:"type:uuid;not null;index:idx_product_shipper"`
	Shipper   *Shipper  `gorm:"constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"size:200;not null;index:idx_product_shipper_name"`
	Barcode   string    `gorm:"size:100;uniqueIndex;not null"`

	// Physical dimensions in centimeters
	Width  decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	Length decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	Height decimal.Decimal `gorm:"type:decimal(10,2);default:0"`

	Quantity          int     `gorm:"not null;default:0"` // on-hand stock
	ProductsPerPallet int     `gorm:"not null;default:0"`
	PalletQuantity    int     `gorm:"not null;default:0"`
	BoxSize           BoxSize `gorm:"size:10;default:'S'"`
}

// NewProduct creates a new product in a shipper's catalog
func NewProduct(shipperID uuid.UUID, name, barcode string, boxSize BoxSize) (*Product, error) {
	if shipperID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPPER", "Shipper ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	if boxSize == "" {
		boxSize = BoxSizeSmall
	}
	if !boxSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_BOX_SIZE", "Unknown box size: "+string(boxSize))
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		ShipperID:  shipperID,
		Name:       name,
		Barcode:    barcode,
		Width:      decimal.Zero,
		Length:     decimal.Zero,
		Height:     decimal.Zero,
		BoxSize:    boxSize,
	}, nil
}

// SetDimensions sets the physical dimensions in centimeters
func (p *Product) SetDimensions(width, length, height decimal.Decimal) error {
	if width.IsNegative() || length.IsNegative() || height.IsNegative() {
		return shared.NewDomainError("INVALID_DIMENSIONS", "Dimensions cannot be negative")
	}
	p.Width = width
	p.Length = length
	p.Height = height
	p.UpdatedAt = time.Now()
	return nil
}

// AddStock increases on-hand stock
func (p *Product) AddStock(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.Quantity += qty
	p.UpdatedAt = time.Now()
	return nil
}

// DeductStock decreases on-hand stock, failing if it would go negative
func (p *Product) DeductStock(qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Quantity < qty {
		return shared.ErrInsufficientStock
	}
	p.Quantity -= qty
	p.UpdatedAt = time.Now()
	return nil
}
