package collection

import (
	"context"
	"time"

	"github.com/PLZ-test/wms/internal/domain/channel"
	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ---------------------------------------------------------------------------
// Master data mocks
// ---------------------------------------------------------------------------

type MockShipperRepository struct {
	mock.Mock
}

func (m *MockShipperRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Shipper, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Shipper), args.Error(1)
}

func (m *MockShipperRepository) FindByName(ctx context.Context, name string) (*masterdata.Shipper, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Shipper), args.Error(1)
}

func (m *MockShipperRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.Shipper, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]masterdata.Shipper), args.Error(1)
}

func (m *MockShipperRepository) Save(ctx context.Context, shipper *masterdata.Shipper) error {
	return m.Called(ctx, shipper).Error(0)
}

func (m *MockShipperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Product), args.Error(1)
}

func (m *MockProductRepository) ResolveIdentifier(ctx context.Context, shipperID uuid.UUID, identifier string) (*masterdata.Product, error) {
	args := m.Called(ctx, shipperID, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, shipperID uuid.UUID, term string, limit int) ([]masterdata.Product, error) {
	args := m.Called(ctx, shipperID, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]masterdata.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *masterdata.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockSalesChannelRepository struct {
	mock.Mock
}

func (m *MockSalesChannelRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.SalesChannel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.SalesChannel), args.Error(1)
}

func (m *MockSalesChannelRepository) FindByName(ctx context.Context, name string) (*masterdata.SalesChannel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.SalesChannel), args.Error(1)
}

func (m *MockSalesChannelRepository) GetOrCreate(ctx context.Context, name string) (*masterdata.SalesChannel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.SalesChannel), args.Error(1)
}

func (m *MockSalesChannelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]masterdata.SalesChannel, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]masterdata.SalesChannel), args.Error(1)
}

type MockChannelCredentialRepository struct {
	mock.Mock
}

func (m *MockChannelCredentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*masterdata.ChannelCredential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*masterdata.ChannelCredential), args.Error(1)
}

func (m *MockChannelCredentialRepository) FindActive(ctx context.Context) ([]masterdata.ChannelCredential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]masterdata.ChannelCredential), args.Error(1)
}

func (m *MockChannelCredentialRepository) FindActiveForShipper(ctx context.Context, shipperID uuid.UUID, channelType *masterdata.ChannelType) ([]masterdata.ChannelCredential, error) {
	args := m.Called(ctx, shipperID, channelType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]masterdata.ChannelCredential), args.Error(1)
}

func (m *MockChannelCredentialRepository) Save(ctx context.Context, cred *masterdata.ChannelCredential) error {
	return m.Called(ctx, cred).Error(0)
}

func (m *MockChannelCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// ---------------------------------------------------------------------------
// Order mocks
// ---------------------------------------------------------------------------

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByDate(ctx context.Context, day time.Time, status *order.Status, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, day, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByDate(ctx context.Context, day time.Time, status *order.Status) (int64, error) {
	args := m.Called(ctx, day, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CreateWithItems(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) ReplaceErrorOrder(ctx context.Context, errorOrderID uuid.UUID, corrected *order.Order) error {
	return m.Called(ctx, errorOrderID, corrected).Error(0)
}

func (m *MockOrderRepository) UpdateErrorPayload(ctx context.Context, id uuid.UUID, payload *order.ErrorPayload) error {
	return m.Called(ctx, id, payload).Error(0)
}

func (m *MockOrderRepository) ExistsDuplicate(ctx context.Context, key order.DuplicateKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindErrorByDuplicateKey(ctx context.Context, key order.DuplicateKey) (*order.Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCollectionLogRepository struct {
	mock.Mock
}

func (m *MockCollectionLogRepository) Append(ctx context.Context, log *order.CollectionLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockCollectionLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.CollectionLog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]order.CollectionLog), args.Get(1).(int64), args.Error(2)
}

// ---------------------------------------------------------------------------
// Channel stubs
// ---------------------------------------------------------------------------

// stubClient returns canned orders or a canned error
type stubClient struct {
	code   masterdata.ChannelType
	orders []order.RawOrder
	err    error
}

func (c *stubClient) Code() masterdata.ChannelType {
	return c.code
}

func (c *stubClient) FetchOrders(ctx context.Context, window channel.Window, creds channel.Credentials) ([]order.RawOrder, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.orders, nil
}

// stubRegistry serves stub clients by channel type
type stubRegistry struct {
	clients map[masterdata.ChannelType]channel.Client
}

func newStubRegistry(clients ...channel.Client) *stubRegistry {
	r := &stubRegistry{clients: make(map[masterdata.ChannelType]channel.Client)}
	for _, c := range clients {
		r.clients[c.Code()] = c
	}
	return r
}

func (r *stubRegistry) Get(code masterdata.ChannelType) (channel.Client, error) {
	c, ok := r.clients[code]
	if !ok {
		return nil, channel.ErrChannelNotRegistered
	}
	return c, nil
}

func (r *stubRegistry) List() []channel.Client {
	out := make([]channel.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}
