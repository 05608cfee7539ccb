package queries

import (
	"errors"

	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/domain/services"
	"steakz/internal/pkg/guard"
)

var ErrGetReceiptsQueryIsNotConstructed = errors.New(
	"GetReceiptsQuery must be created via NewGetReceiptsQuery constructor",
)

// GetReceiptsQuery lists receipts flattened from the board's orders. Zero method and status
// match all; search matches receipt or order id.
type GetReceiptsQuery struct {
	filter  services.ReceiptFilter
	refresh bool

	guard guard.ConstructorGuard
}

func NewGetReceiptsQuery(method payment.Method, status payment.Status, search string, refresh bool) GetReceiptsQuery {
	return GetReceiptsQuery{
		filter:  services.ReceiptFilter{Method: method, Status: status, Search: search},
		refresh: refresh,
		guard:   guard.NewConstructorGuard(),
	}
}

func (q GetReceiptsQuery) Validate() error {
	return q.guard.Validate(ErrGetReceiptsQueryIsNotConstructed)
}

// GetReceiptsQueryResponse holds the matching receipts and totals over them.
type GetReceiptsQueryResponse struct {
	Receipts []payment.Payment
	Stats    services.ReceiptStats
}
