package queries

import (
	"context"

	"steakz/internal/core/domain/model/payment"
	"steakz/internal/core/domain/services"
)

type GetReceiptsQueryHandler struct {
	source  OrderSource
	refresh RefreshFunc
}

func NewGetReceiptsQueryHandler(source OrderSource, refresh RefreshFunc) GetReceiptsQueryHandler {
	return GetReceiptsQueryHandler{source: source, refresh: refresh}
}

func (h GetReceiptsQueryHandler) Handle(ctx context.Context, query GetReceiptsQuery) (GetReceiptsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetReceiptsQueryResponse{}, err
	}
	if err := ensureFresh(ctx, h.source, h.refresh, query.refresh); err != nil {
		return GetReceiptsQueryResponse{}, err
	}

	matching := make([]payment.Payment, 0)
	for _, p := range services.FlattenPayments(h.source.Snapshot()) {
		if query.filter.Matches(p) {
			matching = append(matching, p)
		}
	}

	return GetReceiptsQueryResponse{
		Receipts: matching,
		Stats:    services.ComputeReceiptStats(matching),
	}, nil
}
