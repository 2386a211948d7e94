package masterdata

import (
	"context"

	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
)

// Resolution errors returned by ProductRepository.ResolveIdentifier.
// Ambiguity is a catalog data-quality problem distinct from a missing product;
// callers must never pick one of several matches silently.
var (
	ErrProductAmbiguous = shared.NewDomainError("PRODUCT_AMBIGUOUS", "Identifier matches more than one product for this shipper")
)

// CenterRepository persists fulfillment centers
type CenterRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Center, error)
	FindByName(ctx context.Context, name string) (*Center, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Center, error)
	Save(ctx context.Context, center *Center) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShipperRepository persists shippers
type ShipperRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipper, error)
	FindByName(ctx context.Context, name string) (*Shipper, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipper, error)
	Save(ctx context.Context, shipper *Shipper) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ChannelCredentialRepository persists per-shipper marketplace credentials
type ChannelCredentialRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ChannelCredential, error)
	// FindActive returns all active credentials with their shippers preloaded
	FindActive(ctx context.Context) ([]ChannelCredential, error)
	// FindActiveForShipper returns a shipper's active credentials, optionally
	// narrowed to one channel type
	FindActiveForShipper(ctx context.Context, shipperID uuid.UUID, channelType *ChannelType) ([]ChannelCredential, error)
	Save(ctx context.Context, cred *ChannelCredential) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository persists catalog products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// ResolveIdentifier matches an identifier against both barcode and name,
	// scoped to one shipper's catalog. Returns shared.ErrNotFound when nothing
	// matches and ErrProductAmbiguous when more than one product does.
	ResolveIdentifier(ctx context.Context, shipperID uuid.UUID, identifier string) (*Product, error)
	// Search returns products whose name or barcode contains the term,
	// scoped to a shipper, for correction-UI autocompletion
	Search(ctx context.Context, shipperID uuid.UUID, term string, limit int) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	// Delete removes a product; it fails with shared.ErrProtected while any
	// order line item references the product
	Delete(ctx context.Context, id uuid.UUID) error
}

// SalesChannelRepository persists sales channels
type SalesChannelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesChannel, error)
	FindByName(ctx context.Context, name string) (*SalesChannel, error)
	// GetOrCreate returns the channel with the given name, creating it if
	// absent. Implementations must be race-safe: concurrent calls for a new
	// name must converge on a single row.
	GetOrCreate(ctx context.Context, name string) (*SalesChannel, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesChannel, error)
}

// CourierRepository persists couriers
type CourierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Courier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Courier, error)
	Save(ctx context.Context, courier *Courier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
