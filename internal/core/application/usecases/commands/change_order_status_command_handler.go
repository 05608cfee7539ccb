package commands

import (
	"context"
	"log/slog"

	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/ports"
	"steakz/internal/pkg/errs"
)

// ChangeOrderStatusResult carries the server's answer and the re-fetched order list.
type ChangeOrderStatusResult struct {
	Order  order.Order
	Orders []order.Order

	// Refreshed is false when the status change succeeded but the follow-up listing failed.
	Refreshed bool
}

// ChangeOrderStatusCommandHandler requests a status transition.
//
// The (current status, target, role) triple is checked against the lifecycle table using the
// status on the order board, and a rejected triple never reaches the server. After the server
// accepts the change the board is re-fetched; the status is never patched locally. A failed
// request leaves the board as it was.
type ChangeOrderStatusCommandHandler struct {
	gateway ports.OrderGateway
	board   OrderBoard
	refresh *RefreshOrderBoardCommandHandler
	logger  *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	gateway ports.OrderGateway,
	board OrderBoard,
	refresh *RefreshOrderBoardCommandHandler,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ChangeOrderStatusCommandHandler{
		gateway: gateway,
		board:   board,
		refresh: refresh,
		logger:  logger.With("component", "change_order_status"),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	caller := cmd.Caller()
	if caller == nil {
		return ChangeOrderStatusResult{}, errs.ErrUnauthenticated
	}

	current, err := h.currentOrder(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	if err = current.Status.ValidateTransition(cmd.Target(), caller.Role()); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	updated, err := h.gateway.UpdateOrderStatus(ctx, cmd.OrderID(), cmd.Target())
	if err != nil {
		h.logger.WarnContext(ctx, "status update rejected",
			"order_id", cmd.OrderID(), "from", current.Status.String(), "to", cmd.Target().String(), "error", err)
		return ChangeOrderStatusResult{}, asRemoteFailure(ports.OpUpdateOrderStatus, err)
	}

	h.logger.InfoContext(ctx, "order status updated",
		"order_id", cmd.OrderID(), "from", current.Status.String(), "to", updated.Status.String(), "role", caller.Role().String())

	result := ChangeOrderStatusResult{Order: updated}
	orders, err := h.refresh.Handle(ctx, NewRefreshOrderBoardCommand())
	if err != nil {
		h.logger.WarnContext(ctx, "order board refresh after status update failed", "error", err)
		return result, nil
	}
	result.Orders = orders
	result.Refreshed = true
	return result, nil
}

// currentOrder reads the order from the board, fetching the list once if it is not there.
func (h ChangeOrderStatusCommandHandler) currentOrder(ctx context.Context, orderID int64) (order.Order, error) {
	if o, ok := h.board.Find(orderID); ok {
		return o, nil
	}
	if _, err := h.refresh.Handle(ctx, NewRefreshOrderBoardCommand()); err != nil {
		return order.Order{}, err
	}
	if o, ok := h.board.Find(orderID); ok {
		return o, nil
	}
	return order.Order{}, errs.NewObjectNotFoundError("orderId", orderID)
}
