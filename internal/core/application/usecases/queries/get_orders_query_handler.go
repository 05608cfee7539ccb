package queries

import (
	"context"
	"strconv"
	"strings"

	"steakz/internal/core/domain/model/identity"
	"steakz/internal/core/domain/model/order"
)

type GetOrdersQueryHandler struct {
	source  OrderSource
	refresh RefreshFunc
}

func NewGetOrdersQueryHandler(source OrderSource, refresh RefreshFunc) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{source: source, refresh: refresh}
}

// Handle returns matching orders in board order. Anonymous callers get no actions.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ensureFresh(ctx, h.source, h.refresh, query.refresh); err != nil {
		return nil, err
	}

	role := identity.UnknownRole
	if query.caller != nil {
		role = query.caller.Role()
	}

	views := make([]OrderView, 0)
	for _, o := range h.source.Snapshot() {
		if query.status != nil && o.Status != *query.status {
			continue
		}
		if !matchesOrderSearch(o, query.search) {
			continue
		}
		views = append(views, OrderView{
			Order:                o,
			AvailableTransitions: o.Status.AvailableTransitions(role),
		})
	}
	return views, nil
}

func matchesOrderSearch(o order.Order, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strconv.FormatInt(o.ID, 10), term) ||
		strings.Contains(strings.ToLower(o.CustomerUsername()), term)
}
