package commands

import (
	"context"
	"log/slog"
	"time"

	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/ports"
)

// RefreshOrderBoardCommandHandler replaces the board with the server's current order list. It is
// run on demand and by the scheduled refresh job; the last refresh to finish wins.
type RefreshOrderBoardCommandHandler struct {
	gateway ports.OrderGateway
	board   OrderBoard
	filter  ports.OrderFilter
	logger  *slog.Logger
	now     func() time.Time
}

// NewRefreshOrderBoardCommandHandler returns a handler listing orders that match filter.
func NewRefreshOrderBoardCommandHandler(
	gateway ports.OrderGateway,
	board OrderBoard,
	filter ports.OrderFilter,
	logger *slog.Logger,
) *RefreshOrderBoardCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshOrderBoardCommandHandler{
		gateway: gateway,
		board:   board,
		filter:  filter,
		logger:  logger.With("component", "order_board"),
		now:     time.Now,
	}
}

func (h *RefreshOrderBoardCommandHandler) Handle(ctx context.Context, cmd RefreshOrderBoardCommand) ([]order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.gateway.GetOrders(ctx, h.filter)
	if err != nil {
		return nil, asRemoteFailure(ports.OpGetOrders, err)
	}

	valid := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if vErr := o.Validate(); vErr != nil {
			h.logger.WarnContext(ctx, "skipping malformed order", "order_id", o.ID, "error", vErr)
			continue
		}
		valid = append(valid, o)
	}

	h.board.Replace(valid, h.now())
	h.logger.DebugContext(ctx, "order board refreshed", "orders", len(valid))
	return valid, nil
}
