package collection

import (
	"context"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/google/uuid"
)

// CatalogResolver resolves the free-text references a raw order carries
// (shipper name, channel name, product identifiers) against master data
type CatalogResolver struct {
	shippers masterdata.ShipperRepository
	products masterdata.ProductRepository
	channels masterdata.SalesChannelRepository
}

// NewCatalogResolver creates a CatalogResolver
func NewCatalogResolver(
	shippers masterdata.ShipperRepository,
	products masterdata.ProductRepository,
	channels masterdata.SalesChannelRepository,
) *CatalogResolver {
	return &CatalogResolver{
		shippers: shippers,
		products: products,
		channels: channels,
	}
}

// ResolveShipper resolves a shipper by its exact name
func (r *CatalogResolver) ResolveShipper(ctx context.Context, name string) (*masterdata.Shipper, error) {
	return r.shippers.FindByName(ctx, name)
}

// ResolveProduct resolves a product identifier (barcode or name) within one
// shipper's catalog
func (r *CatalogResolver) ResolveProduct(ctx context.Context, shipperID uuid.UUID, identifier string) (*masterdata.Product, error) {
	return r.products.ResolveIdentifier(ctx, shipperID, identifier)
}

// ResolveChannel returns the sales channel for the given name, creating it on
// first sight. Channel names arrive from external sources; an unknown name is
// new master data, not an error.
func (r *CatalogResolver) ResolveChannel(ctx context.Context, name string) (*masterdata.SalesChannel, error) {
	return r.channels.GetOrCreate(ctx, name)
}
