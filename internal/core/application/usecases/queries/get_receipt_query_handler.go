package queries

import (
	"context"

	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/services"
	"steakz/internal/pkg/errs"
)

// GetReceiptQueryHandler finds the order a receipt belongs to and derives the receipt again.
// A receipt is only reachable through its order, so a receipt whose order is no longer listed
// cannot be reprinted.
type GetReceiptQueryHandler struct {
	source  OrderSource
	refresh RefreshFunc
	deriver services.ReceiptDeriver
}

func NewGetReceiptQueryHandler(source OrderSource, refresh RefreshFunc, deriver services.ReceiptDeriver) GetReceiptQueryHandler {
	return GetReceiptQueryHandler{source: source, refresh: refresh, deriver: deriver}
}

func (h GetReceiptQueryHandler) Handle(ctx context.Context, query GetReceiptQuery) (services.Receipt, error) {
	if err := query.Validate(); err != nil {
		return services.Receipt{}, err
	}

	o, err := h.find(ctx, query.ReceiptID())
	if err != nil {
		return services.Receipt{}, err
	}
	return h.deriver.Derive(o, o.Payment)
}

// find looks the receipt up on the board and fetches the board once when it is missing.
func (h GetReceiptQueryHandler) find(ctx context.Context, receiptID int64) (order.Order, error) {
	if err := ensureFresh(ctx, h.source, h.refresh, false); err != nil {
		return order.Order{}, err
	}
	if o, ok := h.source.FindByReceipt(receiptID); ok {
		return o, nil
	}

	if err := h.refresh(ctx); err != nil {
		return order.Order{}, err
	}
	if o, ok := h.source.FindByReceipt(receiptID); ok {
		return o, nil
	}
	return order.Order{}, errs.NewObjectNotFoundErrorWithCause("receiptId", receiptID, ErrReprintWithoutOrder)
}
