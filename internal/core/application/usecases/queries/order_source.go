// Package queries contains read operations over the order board: order listings with the
// actions a caller may take, receipt derivation for reprint and receipt listings with totals.
package queries

import (
	"context"
	"time"

	"steakz/internal/core/domain/model/order"
)

// OrderSource is the last fetched order list.
type OrderSource interface {
	Snapshot() []order.Order
	FindByReceipt(receiptID int64) (order.Order, bool)
	RefreshedAt() (time.Time, bool)
}

// RefreshFunc re-fetches the order list into the OrderSource.
type RefreshFunc func(ctx context.Context) error

// ensureFresh refreshes when asked to or when the source was never filled.
func ensureFresh(ctx context.Context, source OrderSource, refresh RefreshFunc, force bool) error {
	if _, refreshed := source.RefreshedAt(); refreshed && !force {
		return nil
	}
	return refresh(ctx)
}
