// Package ports defines the contracts between the ordering core and the outside world: the
// remote order API, local storage for the cart and the order event channel.
package ports

import (
	"context"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
)

// CreateOrderRequest is the body of an order creation call.
type CreateOrderRequest struct {
	BranchID        int64
	Items           []OrderLineRequest
	DeliveryAddress string
}

type OrderLineRequest struct {
	MenuItemID int64
	Quantity   int
}

// CreateReceiptRequest is the body of a receipt creation call. Figures are computed by the
// caller; the server stores them as sent.
type CreateReceiptRequest struct {
	OrderID       int64
	Subtotal      kernel.Money
	Tax           kernel.Money
	Total         kernel.Money
	PaymentMethod payment.Method
	CustomerName  string
}

// OrderFilter narrows an order listing. Nil fields are not sent.
type OrderFilter struct {
	Status   *order.Status
	BranchID *int64
}

// OrderGateway is the remote order API. Implementations report failures as
// *errs.RemoteRequestFailedError carrying the server's message when it sent one.
type OrderGateway interface {
	// CreateOrder submits a new order. The server assigns the id and the initial status.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (order.Order, error)

	// CreateReceipt records the payment for an already created order.
	CreateReceipt(ctx context.Context, req CreateReceiptRequest) (payment.Payment, error)

	// GetOrders lists orders with their payments attached.
	GetOrders(ctx context.Context, filter OrderFilter) ([]order.Order, error)

	// UpdateOrderStatus requests a status change. The server is the authority of record and
	// may reject transitions the terminal considered legal.
	UpdateOrderStatus(ctx context.Context, orderID int64, status order.Status) (order.Order, error)
}

// Gateway operation names, as reported in errs.RemoteRequestFailedError.Operation.
const (
	OpCreateOrder       = "createOrder"
	OpCreateReceipt     = "createReceipt"
	OpGetOrders         = "getOrders"
	OpUpdateOrderStatus = "updateOrderStatus"
)

// FallbackMessage is the user-facing text for a failed operation when the server sent none.
func FallbackMessage(op string) string {
	switch op {
	case OpCreateOrder:
		return "Failed to place order"
	case OpCreateReceipt:
		return "Failed to create receipt"
	case OpGetOrders:
		return "Failed to load orders"
	case OpUpdateOrderStatus:
		return "Failed to update order status"
	default:
		return "Request failed"
	}
}
