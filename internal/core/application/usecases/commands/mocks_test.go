package commands_test

import (
	"context"
	"testing"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/domain/model/address"
	"grocery/internal/core/domain/model/cart"
	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Shared testify mocks for the ports the command handlers depend on.

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllForCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type MockSessionStore struct{ mock.Mock }

func (m *MockSessionStore) Get(ctx context.Context, customerID kernel.UUID) (*checkout.Session, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, session *checkout.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, customerID kernel.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockSessionStore) PurgeExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error) {
	args := m.Called(ctx, now, ttl)
	return args.Int(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Publish(ctx context.Context, n ports.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockPincodeDirectory struct{ mock.Mock }

func (m *MockPincodeDirectory) Lookup(ctx context.Context, pincode kernel.Pincode) (kernel.GeoPoint, error) {
	args := m.Called(ctx, pincode)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

func (m *MockPincodeDirectory) Add(ctx context.Context, pincode kernel.Pincode, point kernel.GeoPoint) error {
	args := m.Called(ctx, pincode, point)
	return args.Error(0)
}

type MockLocationProvider struct{ mock.Mock }

func (m *MockLocationProvider) CurrentPosition(ctx context.Context, opts ports.PositionOptions) (kernel.GeoPoint, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

type MockReverseGeocoder struct{ mock.Mock }

func (m *MockReverseGeocoder) Reverse(ctx context.Context, point kernel.GeoPoint) (checkout.DetectedLocation, error) {
	args := m.Called(ctx, point)
	return args.Get(0).(checkout.DetectedLocation), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCartUoW struct{ mock.Mock }

func (m *MockCartUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCartUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

// Aggregate fixtures shared across the handler tests.

func testItems(t *testing.T) []order.Item {
	t.Helper()
	milk, err := order.NewItem(kernel.NewUUID(), "Milk 1L", 2, 30)
	require.NoError(t, err)
	bread, err := order.NewItem(kernel.NewUUID(), "Bread", 1, 25)
	require.NoError(t, err)
	return []order.Item{milk, bread}
}

func testOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	pin, err := kernel.NewPincode("208007")
	require.NoError(t, err)
	addr, err := address.NewAddress("12 Mall Road", "Kanpur", "Uttar Pradesh", pin, "", nil)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, testItems(t), addr, time.Now())
	require.NoError(t, err)
	return o
}

func readySession(t *testing.T, customerID kernel.UUID) *checkout.Session {
	t.Helper()
	s, err := checkout.NewSession(customerID, time.Now())
	require.NoError(t, err)
	now := time.Now()
	s.SetStreet("12 Mall Road", now)
	s.SetCity("Kanpur", now)
	s.SetPincode("208007", now)
	require.True(t, s.ApplyEligibility(true, 0, s.Version(), now))
	return s
}
