package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"steakz/internal/core/domain/model/cart"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/ports"
	"steakz/internal/pkg/errs"
)

const (
	// DefaultFallbackBranchID routes orders when neither the command nor the caller names a branch.
	DefaultFallbackBranchID int64 = 7
)

// ErrReceiptPending means the order exists on the server but its receipt could not be created.
// The cart has already been cleared when it is returned.
var ErrReceiptPending = errors.New("order placed, receipt pending")

// PlaceOrderSettings tunes order placement.
type PlaceOrderSettings struct {
	// FallbackBranchID is used when neither the command nor the caller has a branch.
	FallbackBranchID int64

	// ReceiptAttempts is how many times receipt creation is tried. Values below 1 mean 1.
	ReceiptAttempts int

	// RetryDelay is the base pause between receipt attempts; attempt n waits n*RetryDelay.
	RetryDelay time.Duration
}

// PlaceOrderResult describes a placement that reached the server.
type PlaceOrderResult struct {
	Order    order.Order
	Receipt  *payment.Payment
	Totals   payment.Totals
	BranchID int64

	// ReceiptPending is true when the order was created but the receipt was not.
	ReceiptPending bool
}

// PlaceOrderCommandHandler converts the staged cart into a remote order followed by a remote
// receipt.
//
// The sequence is not atomic:
//  1. preconditions (caller present, cart not empty) are checked before any remote call
//  2. the order is created; on failure the cart is kept and nothing else happens
//  3. the receipt is created with subtotal, 10% tax and total of the cart
//  4. the cart is cleared once the receipt was attempted, whatever the outcome
//  5. a receipt failure is returned as ErrReceiptPending together with the remote error
//
// Steps 3 and 4 and the OrderPlaced event ignore cancellation of ctx once the order exists, so a
// disconnected caller cannot leave a persisted cart behind for an order the server already has.
//
// While Handle runs, IsPlacingOrder reports true so callers can disable duplicate submission.
// The flag is advisory and does not reject concurrent calls.
type PlaceOrderCommandHandler struct {
	cart      Cart
	gateway   ports.OrderGateway
	publisher ports.OrderEventPublisher
	logger    *slog.Logger
	settings  PlaceOrderSettings
	now       func() time.Time

	placing atomic.Bool
}

func NewPlaceOrderCommandHandler(
	c Cart,
	gateway ports.OrderGateway,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
	settings PlaceOrderSettings,
) *PlaceOrderCommandHandler {
	if settings.FallbackBranchID <= 0 {
		settings.FallbackBranchID = DefaultFallbackBranchID
	}
	if settings.ReceiptAttempts < 1 {
		settings.ReceiptAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaceOrderCommandHandler{
		cart:      c,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger.With("component", "place_order"),
		settings:  settings,
		now:       time.Now,
	}
}

// IsPlacingOrder reports whether a placement is in flight.
func (h *PlaceOrderCommandHandler) IsPlacingOrder() bool {
	return h.placing.Load()
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}
	if cmd.Caller() == nil {
		return PlaceOrderResult{}, errs.ErrUnauthenticated
	}

	contents := h.cart.Contents()
	if len(contents.Lines) == 0 {
		return PlaceOrderResult{}, cart.ErrEmptyCart
	}

	h.placing.Store(true)
	defer h.placing.Store(false)

	branchID := h.resolveBranch(cmd)
	req := ports.CreateOrderRequest{
		BranchID:        branchID,
		Items:           make([]ports.OrderLineRequest, 0, len(contents.Lines)),
		DeliveryAddress: cmd.DeliveryAddress(),
	}
	for _, l := range contents.Lines {
		req.Items = append(req.Items, ports.OrderLineRequest{MenuItemID: l.MenuItem().ID(), Quantity: l.Quantity()})
	}

	created, err := h.gateway.CreateOrder(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "order creation failed, cart kept", "branch_id", branchID, "error", err)
		return PlaceOrderResult{}, asRemoteFailure(ports.OpCreateOrder, err)
	}

	// The order exists from here on.
	committed := context.WithoutCancel(ctx)

	result := PlaceOrderResult{
		Order:    created,
		Totals:   payment.NewTotals(contents.TotalPrice),
		BranchID: branchID,
	}

	customerName := payment.WalkInCustomer
	if name := cmd.CustomerName(); name != nil {
		customerName = *name
	}

	receipt, receiptErr := h.createReceipt(committed, ports.CreateReceiptRequest{
		OrderID:       created.ID,
		Subtotal:      result.Totals.Subtotal,
		Tax:           result.Totals.Tax,
		Total:         result.Totals.Total,
		PaymentMethod: cmd.PaymentMethod(),
		CustomerName:  customerName,
	})

	h.cart.ClearCart(committed)

	if receiptErr != nil {
		result.ReceiptPending = true
		h.logger.ErrorContext(committed, "order placed without receipt",
			"order_id", created.ID, "total", result.Totals.Total.String(), "error", receiptErr)
	} else {
		result.Receipt = &receipt
		h.logger.InfoContext(committed, "order placed",
			"order_id", created.ID, "receipt_id", receipt.ID, "branch_id", branchID)
	}

	h.publish(committed, result)

	if receiptErr != nil {
		return result, fmt.Errorf("%w: %w", ErrReceiptPending, receiptErr)
	}
	return result, nil
}

func (h *PlaceOrderCommandHandler) resolveBranch(cmd PlaceOrderCommand) int64 {
	if b := cmd.BranchID(); b != nil {
		return *b
	}
	if b := cmd.Caller().BranchID(); b != nil {
		return *b
	}
	return h.settings.FallbackBranchID
}

func (h *PlaceOrderCommandHandler) createReceipt(ctx context.Context, req ports.CreateReceiptRequest) (payment.Payment, error) {
	var lastErr error
	for attempt := 1; attempt <= h.settings.ReceiptAttempts; attempt++ {
		p, err := h.gateway.CreateReceipt(ctx, req)
		if err == nil {
			return p, nil
		}
		lastErr = asRemoteFailure(ports.OpCreateReceipt, err)

		if attempt == h.settings.ReceiptAttempts {
			break
		}
		h.logger.WarnContext(ctx, "receipt creation failed, retrying",
			"order_id", req.OrderID, "attempt", attempt, "max_attempts", h.settings.ReceiptAttempts, "error", err)

		select {
		case <-ctx.Done():
			return payment.Payment{}, errors.Join(lastErr, ctx.Err())
		case <-time.After(time.Duration(attempt) * h.settings.RetryDelay):
		}
	}
	return payment.Payment{}, lastErr
}

func (h *PlaceOrderCommandHandler) publish(ctx context.Context, result PlaceOrderResult) {
	if h.publisher == nil {
		return
	}
	event := order.PlacedEvent{
		OrderID:        result.Order.ID,
		BranchID:       result.BranchID,
		Total:          result.Totals.Total,
		ReceiptPending: result.ReceiptPending,
		PlacedAt:       h.now().UTC(),
	}
	if result.Receipt != nil {
		id := result.Receipt.ID
		event.ReceiptID = &id
	}
	if err := h.publisher.PublishOrderPlaced(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order placed event", "order_id", result.Order.ID, "error", err)
	}
}

// asRemoteFailure keeps gateway errors that already carry a server message and wraps anything
// else with the operation's fallback message.
func asRemoteFailure(operation string, err error) error {
	var remote *errs.RemoteRequestFailedError
	if errors.As(err, &remote) {
		return err
	}
	return errs.NewRemoteRequestFailedErrorWithCause(operation, ports.FallbackMessage(operation), err)
}
