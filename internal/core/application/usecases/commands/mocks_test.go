package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/domain/model/presence"
	"logistica/internal/core/ports"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id order.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Add(ctx context.Context, r *history.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockHistoryRepository) Get(ctx context.Context, id order.ID) (*history.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*history.Record), args.Error(1)
}

func (m *MockHistoryRepository) Delete(ctx context.Context, id order.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUoW satisfies OrderUoW, HistoryUoW and UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockHistoryUoWFactory struct{ mock.Mock }

func (m *MockHistoryUoWFactory) Create() commands.HistoryUoW {
	args := m.Called()
	return args.Get(0).(commands.HistoryUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(storeKey kernel.StoreKey, name string, payload any) {
	m.Called(storeKey, name, payload)
}

func (m *MockNotifier) PublishUnicast(connectionID kernel.UUID, name string, payload any) {
	m.Called(connectionID, name, payload)
}

func (m *MockNotifier) PublishGlobal(name string, payload any) {
	m.Called(name, payload)
}

type MockPresenceRegistry struct{ mock.Mock }

func (m *MockPresenceRegistry) Join(
	storeKey kernel.StoreKey, phone kernel.Phone, name string, connectionID kernel.UUID, at time.Time,
) (presence.Entry, error) {
	args := m.Called(storeKey, phone, name, connectionID, at)
	return args.Get(0).(presence.Entry), args.Error(1)
}

func (m *MockPresenceRegistry) ReportLocation(
	phone kernel.Phone, loc kernel.Location, fallback ports.PresenceFallback, at time.Time,
) (presence.Entry, error) {
	args := m.Called(phone, loc, fallback, at)
	return args.Get(0).(presence.Entry), args.Error(1)
}

func (m *MockPresenceRegistry) Drop(connectionID kernel.UUID) (presence.Entry, bool) {
	args := m.Called(connectionID)
	return args.Get(0).(presence.Entry), args.Bool(1)
}

func (m *MockPresenceRegistry) FindByPhone(phone kernel.Phone) (presence.Entry, bool) {
	args := m.Called(phone)
	return args.Get(0).(presence.Entry), args.Bool(1)
}

func (m *MockPresenceRegistry) ListByStore(storeKey kernel.StoreKey) []presence.Entry {
	args := m.Called(storeKey)
	return args.Get(0).([]presence.Entry)
}

func (m *MockPresenceRegistry) SweepStale(now time.Time, threshold time.Duration) []presence.Entry {
	args := m.Called(now, threshold)
	return args.Get(0).([]presence.Entry)
}
