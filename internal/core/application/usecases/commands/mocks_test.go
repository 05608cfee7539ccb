package commands_test

import (
	"context"
	"testing"

	"steakz/internal/core/application/cartstore"
	"steakz/internal/core/domain/model/cart"
	"steakz/internal/core/domain/model/identity"
	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (order.Order, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrderGateway) CreateReceipt(ctx context.Context, req ports.CreateReceiptRequest) (payment.Payment, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.Payment), args.Error(1)
}

func (m *MockOrderGateway) GetOrders(ctx context.Context, filter ports.OrderFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderGateway) UpdateOrderStatus(ctx context.Context, orderID int64, status order.Status) (order.Order, error) {
	args := m.Called(ctx, orderID, status)
	return args.Get(0).(order.Order), args.Error(1)
}

type MockCart struct{ mock.Mock }

func (m *MockCart) Contents() cartstore.Contents {
	args := m.Called()
	return args.Get(0).(cartstore.Contents)
}

func (m *MockCart) ClearCart(ctx context.Context) {
	m.Called(ctx)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func staff(t *testing.T, role identity.Role, branchID *int64) *identity.Identity {
	t.Helper()
	id, err := identity.NewIdentity(10, "staff", role, branchID)
	require.NoError(t, err)
	return id
}

type cartLine struct {
	id    int64
	price string
	qty   int
}

func contentsOf(t *testing.T, lines ...cartLine) cartstore.Contents {
	t.Helper()
	c := cart.New()
	for _, l := range lines {
		item, err := cart.NewMenuItem(l.id, "item", kernel.MustMoney(l.price), "")
		require.NoError(t, err)
		require.NoError(t, c.Add(item, l.qty))
	}
	return cartstore.Contents{Lines: c.Lines(), TotalPrice: c.TotalPrice(), TotalItems: c.TotalItems()}
}

func ptr[T any](v T) *T {
	return &v
}
