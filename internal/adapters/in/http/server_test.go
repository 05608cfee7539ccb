package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpapi "steakz/internal/adapters/in/http"
	"steakz/internal/adapters/in/http/api"
	"steakz/internal/adapters/out/localstore"
	"steakz/internal/adapters/out/rabbitmq"
	"steakz/internal/adapters/out/render"
	"steakz/internal/core/application/board"
	"steakz/internal/core/application/cartstore"
	"steakz/internal/core/application/usecases/commands"
	"steakz/internal/core/application/usecases/queries"
	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/domain/services"
	"steakz/internal/core/ports"
	"steakz/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory stand-in for the restaurant backend.
type fakeBackend struct {
	mu            sync.Mutex
	orders        []order.Order
	nextOrderID   int64
	nextReceiptID int64
	createErr     error
	receiptErr    error

	// afterCreate runs once an order has been stored.
	afterCreate func()
}

func (b *fakeBackend) CreateOrder(_ context.Context, req ports.CreateOrderRequest) (order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.createErr != nil {
		return order.Order{}, b.createErr
	}
	b.nextOrderID++
	o := order.Order{
		ID:              b.nextOrderID,
		Status:          order.Pending,
		DeliveryAddress: req.DeliveryAddress,
		BranchID:        req.BranchID,
		CreatedAt:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		TotalAmount:     kernel.Zero,
		Customer:        &order.Customer{ID: 1, Username: "ana"},
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, order.Item{
			MenuItemID: it.MenuItemID,
			Name:       "Steak",
			Quantity:   it.Quantity,
			UnitPrice:  kernel.MustMoney("20"),
		})
	}
	b.orders = append(b.orders, o)
	if b.afterCreate != nil {
		b.afterCreate()
	}
	return o, nil
}

func (b *fakeBackend) CreateReceipt(ctx context.Context, req ports.CreateReceiptRequest) (payment.Payment, error) {
	if err := ctx.Err(); err != nil {
		return payment.Payment{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.receiptErr != nil {
		return payment.Payment{}, b.receiptErr
	}
	b.nextReceiptID++
	p := payment.Payment{
		ID:           b.nextReceiptID + 100,
		OrderID:      req.OrderID,
		Subtotal:     req.Subtotal,
		Tax:          req.Tax,
		Amount:       req.Total,
		Method:       req.PaymentMethod,
		Status:       payment.Completed,
		CustomerName: req.CustomerName,
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 5, 0, time.UTC),
	}
	for i := range b.orders {
		if b.orders[i].ID == req.OrderID {
			b.orders[i].Payment = &p
		}
	}
	return p, nil
}

func (b *fakeBackend) GetOrders(context.Context, ports.OrderFilter) ([]order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]order.Order(nil), b.orders...), nil
}

func (b *fakeBackend) UpdateOrderStatus(_ context.Context, id int64, status order.Status) (order.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.orders {
		if b.orders[i].ID == id {
			b.orders[i].Status = status
			return b.orders[i], nil
		}
	}
	return order.Order{}, errs.NewRemoteRequestFailedError("updateOrderStatus", "Order not found", 404)
}

type testServer struct {
	echo    *echo.Echo
	backend *fakeBackend
	cart    *cartstore.Store
	storage *localstore.FileStorage
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	storage, err := localstore.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	backend := &fakeBackend{}
	store := cartstore.New(t.Context(), storage, nil)
	b := board.New()

	refresh := commands.NewRefreshOrderBoardCommandHandler(backend, b, ports.OrderFilter{}, nil)
	refreshFn := func(ctx context.Context) error {
		_, err := refresh.Handle(ctx, commands.NewRefreshOrderBoardCommand())
		return err
	}

	server := httpapi.NewServer(
		store,
		commands.NewPlaceOrderCommandHandler(store, backend, rabbitmq.NopPublisher{}, nil, commands.PlaceOrderSettings{}),
		commands.NewChangeOrderStatusCommandHandler(backend, b, refresh, nil),
		queries.NewGetOrdersQueryHandler(b, refreshFn),
		queries.NewGetReceiptQueryHandler(b, refreshFn, services.NewReceiptDeriver(time.UTC)),
		queries.NewGetReceiptsQueryHandler(b, refreshFn),
		render.NewTextRenderer("STEAKZ", 32),
		nil,
	)

	doc, err := api.Load(t.Context())
	require.NoError(t, err)

	e := echo.New()
	require.NoError(t, server.Register(e, doc))

	return testServer{echo: e, backend: backend, cart: store, storage: storage}
}

func (s testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	return s.doContext(t, t.Context(), method, path, body, headers)
}

func (s testServer) doContext(
	t *testing.T,
	ctx context.Context,
	method, path, body string,
	headers map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	var req *nethttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var (
	cashier = map[string]string{httpapi.HeaderUserID: "1", httpapi.HeaderUserRole: "CASHIER", httpapi.HeaderUsername: "ana"}
	chef    = map[string]string{httpapi.HeaderUserID: "2", httpapi.HeaderUserRole: "chef", httpapi.HeaderBranchID: "3"}
)

const steakBody = `{"menuItem":{"id":1,"name":"Steak","price":20},"quantity":2}`

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nethttp.MethodGet, "/health", "", nil)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestOpenAPIDocument(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nethttp.MethodGet, "/openapi.json", "", nil)

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/cart/items")
}

func TestCart_AddUpdateRemove(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	c := decode[httpapi.Cart](t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "40.00", c.TotalPrice)
	assert.Equal(t, 2, c.TotalItems)

	rec = s.do(t, nethttp.MethodPost, "/api/v1/cart/items", `{"menuItem":{"id":1,"name":"Steak","price":20}}`, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	c = decode[httpapi.Cart](t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)

	lineID := c.Items[0].ID
	rec = s.do(t, nethttp.MethodPatch, "/api/v1/cart/items/"+lineID, `{"quantity":5}`, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "100.00", decode[httpapi.Cart](t, rec).TotalPrice)

	rec = s.do(t, nethttp.MethodDelete, "/api/v1/cart/items/"+lineID, "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Empty(t, decode[httpapi.Cart](t, rec).Items)
}

func TestCart_InvalidRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"zero quantity", nethttp.MethodPost, "/api/v1/cart/items", `{"menuItem":{"id":1,"name":"Steak","price":20},"quantity":0}`, nethttp.StatusBadRequest},
		{"missing menu item", nethttp.MethodPost, "/api/v1/cart/items", `{"quantity":1}`, nethttp.StatusBadRequest},
		{"negative price", nethttp.MethodPost, "/api/v1/cart/items", `{"menuItem":{"id":1,"name":"Steak","price":-1}}`, nethttp.StatusBadRequest},
		{"bad line id", nethttp.MethodDelete, "/api/v1/cart/items/not-a-uuid", "", nethttp.StatusBadRequest},
		{"unknown route", nethttp.MethodGet, "/api/v1/nothing", "", nethttp.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestPlaceOrder_Unauthenticated(t *testing.T) {
	s := newTestServer(t)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", `{}`, nil)

	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	assert.Equal(t, errs.ErrUnauthenticated.Error(), decode[httpapi.Error](t, rec).Message)
	assert.False(t, s.cart.IsEmpty())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", `{}`, cashier)

	assert.Equal(t, nethttp.StatusConflict, rec.Code)
}

func TestPlaceOrder_Success(t *testing.T) {
	s := newTestServer(t)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders",
		`{"deliveryAddress":"Table 4","paymentMethod":"CREDIT_CARD"}`, cashier)

	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	placement := decode[httpapi.Placement](t, rec)
	assert.Equal(t, int64(commands.DefaultFallbackBranchID), placement.BranchID)
	assert.Equal(t, "40.00", placement.Subtotal)
	assert.Equal(t, "4.00", placement.Tax)
	assert.Equal(t, "44.00", placement.Total)
	assert.False(t, placement.ReceiptPending)
	require.NotNil(t, placement.Receipt)
	assert.Equal(t, "CREDIT_CARD", placement.Receipt.Method)
	assert.Equal(t, payment.WalkInCustomer, placement.Receipt.CustomerName)
	assert.True(t, s.cart.IsEmpty())
	s.assertStoredCartEmpty(t)
}

func TestPlaceOrder_ClientGoneAfterOrderCreated(t *testing.T) {
	s := newTestServer(t)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)
	ctx, cancel := context.WithCancel(t.Context())
	s.backend.afterCreate = cancel

	rec := s.doContext(t, ctx, nethttp.MethodPost, "/api/v1/orders", `{"deliveryAddress":"Table 4"}`, cashier)

	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	placement := decode[httpapi.Placement](t, rec)
	assert.False(t, placement.ReceiptPending)
	require.NotNil(t, placement.Receipt)
	assert.True(t, s.cart.IsEmpty())
	s.assertStoredCartEmpty(t)
}

// assertStoredCartEmpty reopens the cart from storage, as a restarted terminal would.
func (s testServer) assertStoredCartEmpty(t *testing.T) {
	t.Helper()

	data, found, err := s.storage.Load(t.Context(), cartstore.StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, "[]", string(data))

	reopened := cartstore.New(t.Context(), s.storage, nil)
	assert.True(t, reopened.IsEmpty())
}

func TestPlaceOrder_BranchHeader(t *testing.T) {
	s := newTestServer(t)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", "", chef)

	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(3), decode[httpapi.Placement](t, rec).BranchID)
}

func TestPlaceOrder_BodyBranchOverridesIdentity(t *testing.T) {
	s := newTestServer(t)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", `{"branchId":9}`, chef)

	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(9), decode[httpapi.Placement](t, rec).BranchID)
}

func TestPlaceOrder_AnonymousIgnoresBranchHeader(t *testing.T) {
	s := newTestServer(t)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", `{}`, map[string]string{httpapi.HeaderBranchID: "abc"})

	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code, rec.Body.String())
	assert.False(t, s.cart.IsEmpty())
}

func TestUnrecognisedRole(t *testing.T) {
	s := newTestServer(t)
	admin := map[string]string{httpapi.HeaderUserID: "5", httpapi.HeaderUserRole: "ADMIN", httpapi.HeaderBranchID: "4"}

	rec := s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, admin)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, nethttp.MethodPost, "/api/v1/orders", `{}`, admin)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	placed := decode[httpapi.Placement](t, rec)
	assert.Equal(t, int64(4), placed.BranchID)

	rec = s.do(t, nethttp.MethodGet, "/api/v1/orders?refresh=true", "", admin)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	orders := decode[[]httpapi.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].AvailableTransitions)

	path := "/api/v1/orders/" + jsonInt(placed.Order.ID) + "/status"
	rec = s.do(t, nethttp.MethodPatch, path, `{"status":"CANCELLED"}`, admin)
	assert.Equal(t, nethttp.StatusForbidden, rec.Code, rec.Body.String())
}

func TestPlaceOrder_ReceiptPending(t *testing.T) {
	s := newTestServer(t)
	s.backend.receiptErr = errs.NewRemoteRequestFailedError("createReceipt", "Receipt service down", 503)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", `{}`, cashier)

	require.Equal(t, nethttp.StatusCreated, rec.Code)
	placement := decode[httpapi.Placement](t, rec)
	assert.True(t, placement.ReceiptPending)
	assert.Nil(t, placement.Receipt)
	assert.Contains(t, placement.Warning, "receipt pending")
	assert.Contains(t, placement.Warning, "Receipt service down")
	assert.True(t, s.cart.IsEmpty())
	s.assertStoredCartEmpty(t)
}

func TestPlaceOrder_RemoteFailure(t *testing.T) {
	s := newTestServer(t)
	s.backend.createErr = errs.NewRemoteRequestFailedError("createOrder", "Menu item 1 is not available", 400)
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)

	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", `{}`, cashier)

	assert.Equal(t, nethttp.StatusBadGateway, rec.Code)
	assert.Equal(t, "Menu item 1 is not available", decode[httpapi.Error](t, rec).Message)
	assert.False(t, s.cart.IsEmpty())
	assert.Equal(t, 2, cartstore.New(t.Context(), s.storage, nil).TotalItems())
}

func TestPlacementState(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, nethttp.MethodGet, "/api/v1/orders/placement", "", nil)

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.False(t, decode[httpapi.PlacementState](t, rec).Placing)
}

func placeOne(t *testing.T, s testServer) httpapi.Placement {
	t.Helper()
	s.do(t, nethttp.MethodPost, "/api/v1/cart/items", steakBody, nil)
	rec := s.do(t, nethttp.MethodPost, "/api/v1/orders", `{"deliveryAddress":"Table 4"}`, cashier)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	return decode[httpapi.Placement](t, rec)
}

func TestListOrders_TransitionsByRole(t *testing.T) {
	s := newTestServer(t)
	placeOne(t, s)

	rec := s.do(t, nethttp.MethodGet, "/api/v1/orders?refresh=true", "", chef)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	orders := decode[[]httpapi.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, []string{"PREPARING", "CANCELLED"}, orders[0].AvailableTransitions)

	rec = s.do(t, nethttp.MethodGet, "/api/v1/orders", "", cashier)
	orders = decode[[]httpapi.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, []string{"DELIVERED", "CANCELLED"}, orders[0].AvailableTransitions)

	rec = s.do(t, nethttp.MethodGet, "/api/v1/orders?status=READY", "", chef)
	assert.Empty(t, decode[[]httpapi.Order](t, rec))

	rec = s.do(t, nethttp.MethodGet, "/api/v1/orders?status=SHIPPED", "", chef)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestChangeOrderStatus(t *testing.T) {
	s := newTestServer(t)
	placed := placeOne(t, s)
	path := "/api/v1/orders/" + jsonInt(placed.Order.ID) + "/status"

	rec := s.do(t, nethttp.MethodPatch, path, `{"status":"PREPARING"}`, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)

	rec = s.do(t, nethttp.MethodPatch, path, `{"status":"PREPARING"}`, cashier)
	assert.Equal(t, nethttp.StatusForbidden, rec.Code)

	rec = s.do(t, nethttp.MethodPatch, path, `{"status":"PREPARING"}`, chef)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	change := decode[httpapi.StatusChange](t, rec)
	assert.Equal(t, "PREPARING", change.Order.Status)
	assert.True(t, change.Refreshed)
	require.Len(t, change.Orders, 1)
	assert.Equal(t, "PREPARING", change.Orders[0].Status)

	rec = s.do(t, nethttp.MethodPatch, "/api/v1/orders/999/status", `{"status":"CANCELLED"}`, chef)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestReceipts(t *testing.T) {
	s := newTestServer(t)
	placed := placeOne(t, s)
	require.NotNil(t, placed.Receipt)
	receiptPath := "/api/v1/receipts/" + jsonInt(placed.Receipt.ID)

	rec := s.do(t, nethttp.MethodGet, "/api/v1/receipts?method=CASH", "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	list := decode[httpapi.ReceiptList](t, rec)
	require.Len(t, list.Receipts, 1)
	assert.Equal(t, "44.00", list.Stats.Revenue)
	assert.Equal(t, 1, list.Stats.CompletedCount)
	assert.Equal(t, "44.00", list.Stats.ByMethod["CASH"])
	assert.Equal(t, "0.00", list.Stats.ByMethod["CREDIT_CARD"])

	rec = s.do(t, nethttp.MethodGet, receiptPath, "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	receipt := decode[httpapi.Receipt](t, rec)
	assert.Equal(t, "ana", receipt.CustomerName)
	assert.Equal(t, "2025-03-01 12:00:05", receipt.Timestamp)
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, "2x Steak", receipt.Lines[0].Label)
	assert.Equal(t, "40.00", receipt.Lines[0].Amount)
	assert.Equal(t, "44.00", receipt.Total)

	rec = s.do(t, nethttp.MethodGet, receiptPath+"/text", "", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Receipt #"+jsonInt(placed.Receipt.ID))
	assert.Contains(t, rec.Body.String(), "44.00")

	rec = s.do(t, nethttp.MethodGet, "/api/v1/receipts/999", "", nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
