package queries

import (
	"errors"
	"strings"

	"steakz/internal/core/domain/model/identity"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders on the board, optionally filtered by status and by a search term
// matched against the order id and the customer's username.
//
// Example:
//
//	status := order.Pending
//	query, _ := NewGetOrdersQuery(caller, &status, "ana", true)
//	views, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	caller  *identity.Identity
	status  *order.Status
	search  string
	refresh bool

	guard guard.ConstructorGuard
}

func NewGetOrdersQuery(caller *identity.Identity, status *order.Status, search string, refresh bool) (GetOrdersQuery, error) {
	q := GetOrdersQuery{
		caller:  caller,
		search:  strings.ToLower(strings.TrimSpace(search)),
		refresh: refresh,
		guard:   guard.NewConstructorGuard(),
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// OrderView is an order together with the status changes the caller may request.
type OrderView struct {
	Order                order.Order
	AvailableTransitions []order.Status
}
