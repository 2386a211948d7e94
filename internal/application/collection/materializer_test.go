package collection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fixture wires a Service and Materializer to mocks with a one-shipper,
// one-product catalog
type fixture struct {
	shippers *MockShipperRepository
	products *MockProductRepository
	channels *MockSalesChannelRepository
	creds    *MockChannelCredentialRepository
	orders   *MockOrderRepository
	logs     *MockCollectionLogRepository

	materializer *Materializer
	service      *Service

	shipper      *masterdata.Shipper
	product      *masterdata.Product
	salesChannel *masterdata.SalesChannel
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		shippers: new(MockShipperRepository),
		products: new(MockProductRepository),
		channels: new(MockSalesChannelRepository),
		creds:    new(MockChannelCredentialRepository),
		orders:   new(MockOrderRepository),
		logs:     new(MockCollectionLogRepository),
	}

	center, err := masterdata.NewCenter("main", "")
	require.NoError(t, err)
	f.shipper, err = masterdata.NewShipper(center.ID, "acme", "", "")
	require.NoError(t, err)
	f.product, err = masterdata.NewProduct(f.shipper.ID, "ceramic mug", "8800001", masterdata.BoxSizeSmall)
	require.NoError(t, err)
	f.salesChannel, err = masterdata.NewSalesChannel("Coupang")
	require.NoError(t, err)

	resolver := NewCatalogResolver(f.shippers, f.products, f.channels)
	f.materializer = NewMaterializer(resolver, f.orders, zap.NewNop())
	f.service = NewService(f.creds, newStubRegistry(), f.materializer, f.orders, f.logs, zap.NewNop(), opts)
	return f
}

// stubCatalog wires the happy-path lookups for the fixture's shipper,
// product and sales channel
func (f *fixture) stubCatalog() {
	f.shippers.On("FindByName", mock.Anything, "acme").Return(f.shipper, nil)
	f.products.On("ResolveIdentifier", mock.Anything, f.shipper.ID, "8800001").Return(f.product, nil)
	f.channels.On("GetOrCreate", mock.Anything, "Coupang").Return(f.salesChannel, nil)
}

func validRaw() order.RawOrder {
	return order.RawOrder{
		OrderDate:      time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		ShipperName:    "acme",
		ChannelName:    "Coupang",
		RecipientName:  "Kim Minji",
		RecipientPhone: "010-1234-5678",
		Address:        "12 Teheran-ro, Seoul",
		Postcode:       "06234",
		Items:          []order.RawLineItem{{ProductIdentifier: "8800001", Quantity: 2}},
	}
}

func TestMaterializer_ValidRowBecomesPendingOrder(t *testing.T) {
	f := newFixture(t, Options{})
	f.stubCatalog()
	f.orders.On("ExistsDuplicate", mock.Anything, mock.Anything).Return(false, nil)

	var created *order.Order
	f.orders.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
		Return(nil)

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), validRaw(), gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowSuccess, outcome)

	require.NotNil(t, created)
	assert.Equal(t, order.StatusPending, created.Status)
	assert.Equal(t, f.shipper.ID, *created.ShipperID)
	assert.Equal(t, f.salesChannel.ID, *created.ChannelID)
	assert.Equal(t, "Kim Minji", created.RecipientName)
	require.Len(t, created.Items, 1)
	assert.Equal(t, f.product.ID, created.Items[0].ProductID)
	assert.Equal(t, 2, created.Items[0].Quantity)
	assert.Nil(t, created.Error)
}

func TestMaterializer_CollectsEveryProblemAtOnce(t *testing.T) {
	f := newFixture(t, Options{})
	f.shippers.On("FindByName", mock.Anything, "acme").Return(f.shipper, nil)
	f.products.On("ResolveIdentifier", mock.Anything, f.shipper.ID, "no-such").Return(nil, shared.ErrNotFound)
	f.channels.On("GetOrCreate", mock.Anything, "Coupang").Return(f.salesChannel, nil)
	f.orders.On("FindErrorByDuplicateKey", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	var created *order.Order
	f.orders.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
		Return(nil)

	raw := validRaw()
	raw.RecipientName = ""
	raw.Items = []order.RawLineItem{{ProductIdentifier: "no-such", Quantity: 0}}

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), raw, gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowError, outcome)

	require.NotNil(t, created)
	assert.Equal(t, order.StatusError, created.Status)
	require.NotNil(t, created.Error)
	assert.ElementsMatch(t, []string{
		"recipient_name",
		"items[0].product_identifier",
		"items[0].quantity",
	}, created.Error.Fields, "all problems are reported in one pass")
	require.NotNil(t, created.Error.Raw, "the original row survives inside the payload")
	assert.Equal(t, "no-such", created.Error.Raw.Items[0].ProductIdentifier)

	// the resolvable shipper reference is still linked on the error row
	require.NotNil(t, created.ShipperID)
	assert.Equal(t, f.shipper.ID, *created.ShipperID)
}

func TestMaterializer_UnknownShipperBecomesErrorOrder(t *testing.T) {
	f := newFixture(t, Options{})
	f.shippers.On("FindByName", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)
	f.orders.On("FindErrorByDuplicateKey", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	var created *order.Order
	f.orders.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
		Return(nil)

	raw := validRaw()
	raw.ShipperName = "ghost"
	raw.ChannelName = "" // channel resolution is skipped for blank names

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), raw, gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowError, outcome)

	require.NotNil(t, created)
	assert.Nil(t, created.ShipperID)
	assert.Equal(t, "ghost", created.ShipperName, "the raw name survives for duplicate matching")
	assert.Empty(t, created.Items, "items cannot resolve without a shipper")
	assert.Contains(t, created.Error.Message, `unknown shipper "ghost"`)
}

func TestMaterializer_RepeatedBadRowRefreshesDiagnosis(t *testing.T) {
	f := newFixture(t, Options{})
	f.shippers.On("FindByName", mock.Anything, "acme").Return(f.shipper, nil)
	f.products.On("ResolveIdentifier", mock.Anything, f.shipper.ID, "no-such").Return(nil, shared.ErrNotFound)

	existing, err := order.New("", time.Now(), f.shipper.ID, uuid.Nil)
	require.NoError(t, err)
	require.NoError(t, existing.MarkError(&order.ErrorPayload{Message: "old diagnosis"}))

	f.orders.On("FindErrorByDuplicateKey", mock.Anything, mock.Anything).Return(existing, nil)
	f.orders.On("UpdateErrorPayload", mock.Anything, existing.ID, mock.AnythingOfType("*order.ErrorPayload")).Return(nil)

	raw := validRaw()
	raw.Items = []order.RawLineItem{{ProductIdentifier: "no-such", Quantity: 1}}

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), raw, gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowError, outcome)

	f.orders.AssertCalled(t, "UpdateErrorPayload", mock.Anything, existing.ID, mock.AnythingOfType("*order.ErrorPayload"))
	f.orders.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything)
}

func TestMaterializer_DuplicateSkipped(t *testing.T) {
	f := newFixture(t, Options{})
	f.stubCatalog()
	f.orders.On("ExistsDuplicate", mock.Anything, mock.Anything).Return(true, nil)

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), validRaw(), gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowDuplicate, outcome)
	f.orders.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything)
}

func TestMaterializer_ForceAcceptDiscardsExternalNumber(t *testing.T) {
	f := newFixture(t, Options{})
	f.stubCatalog()
	f.orders.On("ExistsDuplicate", mock.Anything, mock.Anything).Return(true, nil)

	var created *order.Order
	f.orders.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*order.Order) }).
		Return(nil)

	raw := validRaw()
	raw.OrderNo = "CPG-1001"

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), raw, gate, DuplicatePolicyForceAccept)
	require.NoError(t, err)
	assert.Equal(t, RowSuccess, outcome)
	require.NotNil(t, created)
	assert.Empty(t, created.OrderNo, "the force-accepted copy gets a generated number")
}

func TestMaterializer_InBatchDuplicate(t *testing.T) {
	f := newFixture(t, Options{})
	f.stubCatalog()
	// the persistent check sees nothing; only the in-batch gate catches row 2
	f.orders.On("ExistsDuplicate", mock.Anything, mock.Anything).Return(false, nil)
	f.orders.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)

	gate := NewDeduplicationGate(f.orders)
	ctx := context.Background()

	outcome, err := f.materializer.Materialize(ctx, validRaw(), gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowSuccess, outcome)

	outcome, err = f.materializer.Materialize(ctx, validRaw(), gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowDuplicate, outcome)

	f.orders.AssertNumberOfCalls(t, "CreateWithItems", 1)
}

func TestMaterializer_StoreFailureFallsBackToErrorOrder(t *testing.T) {
	f := newFixture(t, Options{})
	f.stubCatalog()
	f.orders.On("ExistsDuplicate", mock.Anything, mock.Anything).Return(false, nil)
	f.orders.On("FindErrorByDuplicateKey", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	var statuses []order.Status
	f.orders.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { statuses = append(statuses, args.Get(1).(*order.Order).Status) }).
		Return(errors.New("unique constraint violated")).Once()
	f.orders.On("CreateWithItems", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) { statuses = append(statuses, args.Get(1).(*order.Order).Status) }).
		Return(nil).Once()

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), validRaw(), gate, DuplicatePolicySkip)
	require.NoError(t, err)
	assert.Equal(t, RowError, outcome)
	assert.Equal(t, []order.Status{order.StatusPending, order.StatusError}, statuses,
		"the failed store is retried as an error order")
}

func TestMaterializer_LostRowSurfacesError(t *testing.T) {
	f := newFixture(t, Options{})
	f.shippers.On("FindByName", mock.Anything, "ghost").Return(nil, shared.ErrNotFound)
	f.channels.On("GetOrCreate", mock.Anything, "Coupang").Return(f.salesChannel, nil)
	f.orders.On("FindErrorByDuplicateKey", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	f.orders.On("CreateWithItems", mock.Anything, mock.Anything).Return(errors.New("database down"))

	raw := validRaw()
	raw.ShipperName = "ghost"

	gate := NewDeduplicationGate(f.orders)
	outcome, err := f.materializer.Materialize(context.Background(), raw, gate, DuplicatePolicySkip)
	assert.Equal(t, RowError, outcome)
	require.Error(t, err, "a lost row must never be silent")
}
