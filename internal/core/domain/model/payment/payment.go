package payment

import (
	"time"

	"steakz/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// WalkInCustomer is the customer name recorded when a receipt is created without one.
const WalkInCustomer = "Walk-in Customer"

// taxPercent is the fixed sales tax applied to every order.
const taxPercent = 10

// TaxRate returns the sales tax as a fraction (0.10).
func TaxRate() decimal.Decimal {
	return decimal.New(taxPercent, -2)
}

// Payment is the receipt record the server stores for an order. It is a snapshot of server
// state and is never mutated locally.
type Payment struct {
	ID           int64
	OrderID      int64
	Amount       kernel.Money
	Tax          kernel.Money
	Subtotal     kernel.Money
	Method       Method
	Status       Status
	CustomerName string
	CreatedAt    time.Time
}

// Totals is the figure set sent when a receipt is created.
type Totals struct {
	Subtotal kernel.Money
	Tax      kernel.Money
	Total    kernel.Money
}

// NewTotals applies the sales tax to subtotal.
func NewTotals(subtotal kernel.Money) Totals {
	tax := subtotal.MulRate(TaxRate())
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
