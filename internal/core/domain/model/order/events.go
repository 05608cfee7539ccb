package order

import (
	"time"

	"steakz/internal/core/domain/model/kernel"
)

// PlacedEvent is announced after an order and, when it succeeded, its receipt were created.
type PlacedEvent struct {
	OrderID        int64        `json:"orderId"`
	ReceiptID      *int64       `json:"receiptId,omitempty"`
	BranchID       int64        `json:"branchId"`
	Total          kernel.Money `json:"total"`
	ReceiptPending bool         `json:"receiptPending"`
	PlacedAt       time.Time    `json:"placedAt"`
}
