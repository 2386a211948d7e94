package handler

import (
	"context"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
	"github.com/PLZ-test/wms/internal/domain/shared"
	"github.com/PLZ-test/wms/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) ShipOrders(ctx context.Context, orderIDs []uuid.UUID) ([]string, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Append(ctx context.Context, movement *stock.Movement) error {
	return m.Called(ctx, movement).Error(0)
}

func (m *MockMovementRepository) Receive(ctx context.Context, productID uuid.UUID, quantity int, memo string) (*stock.Movement, error) {
	args := m.Called(ctx, productID, quantity, memo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]stock.Movement, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.Movement), args.Error(1)
}
