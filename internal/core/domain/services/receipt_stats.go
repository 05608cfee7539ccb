package services

import (
	"strconv"
	"strings"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
)

// ReceiptStats summarizes settled receipts. Only COMPLETED payments count towards revenue.
type ReceiptStats struct {
	Revenue        kernel.Money
	CompletedCount int
	ByMethod       map[payment.Method]kernel.Money
}

// ReceiptFilter narrows a receipt list. Zero fields match everything. Search matches the receipt
// id or the order id as a substring.
type ReceiptFilter struct {
	Method payment.Method
	Status payment.Status
	Search string
}

func (f ReceiptFilter) Matches(p payment.Payment) bool {
	if f.Method != payment.UnknownMethod && p.Method != f.Method {
		return false
	}
	if f.Status != payment.UnknownStatus && p.Status != f.Status {
		return false
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		return strings.Contains(strconv.FormatInt(p.ID, 10), term) ||
			strings.Contains(strconv.FormatInt(p.OrderID, 10), term)
	}
	return true
}

// FlattenPayments collects the payments attached to orders, skipping orders without one.
func FlattenPayments(orders []order.Order) []payment.Payment {
	out := make([]payment.Payment, 0, len(orders))
	for _, o := range orders {
		if o.Payment != nil {
			out = append(out, *o.Payment)
		}
	}
	return out
}

// ComputeReceiptStats totals the COMPLETED payments by method. Every method is present in ByMethod.
func ComputeReceiptStats(payments []payment.Payment) ReceiptStats {
	stats := ReceiptStats{
		Revenue:  kernel.Zero,
		ByMethod: make(map[payment.Method]kernel.Money, len(payment.Methods())),
	}
	for _, m := range payment.Methods() {
		stats.ByMethod[m] = kernel.Zero
	}

	for _, p := range payments {
		if p.Status != payment.Completed {
			continue
		}
		stats.CompletedCount++
		stats.Revenue = stats.Revenue.Add(p.Amount)
		if _, ok := stats.ByMethod[p.Method]; ok {
			stats.ByMethod[p.Method] = stats.ByMethod[p.Method].Add(p.Amount)
		}
	}

	return stats
}
