package services

import (
	"fmt"
	"time"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/order"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/pkg/errs"
)

const (
	// GuestLabel is shown when neither the order nor the payment names a customer.
	GuestLabel = "Guest"

	// ReceiptTimeLayout formats the receipt timestamp.
	ReceiptTimeLayout = "2006-01-02 15:04:05"
)

// Receipt is the render-agnostic data of a printed or emailed receipt. Every rendering target
// needs at least the order id, receipt id, itemized lines, total, method and status.
type Receipt struct {
	OrderID         int64
	ReceiptID       int64
	CustomerName    string
	CreatedAt       time.Time
	Timestamp       string
	DeliveryAddress string
	Lines           []ReceiptLine
	Subtotal        kernel.Money
	Tax             kernel.Money
	Total           kernel.Money
	Method          payment.Method
	Status          payment.Status
}

// ReceiptLine is one itemized entry, e.g. Label "2x Steak" and Amount 40.
type ReceiptLine struct {
	Quantity int
	Name     string
	Label    string
	Amount   kernel.Money
}

// lineSeparator is an em dash between spaces.
const lineSeparator = " \u2014 "

// Text joins label and amount with lineSeparator.
func (l ReceiptLine) Text() string {
	return l.Label + lineSeparator + l.Amount.Format()
}

func (r Receipt) SubtotalText() string { return r.Subtotal.Format() }
func (r Receipt) TaxText() string      { return r.Tax.Format() }
func (r Receipt) TotalText() string    { return r.Total.Format() }

// MethodText is the payment method with underscores replaced by spaces, e.g. "CREDIT CARD".
func (r Receipt) MethodText() string { return r.Method.Display() }

// StatusText is the payment status with underscores replaced by spaces.
func (r Receipt) StatusText() string { return r.Status.Display() }

// ReceiptDeriver computes receipts from an order and its payment.
//
// Derivation is pure: the same order and payment always yield the same Receipt, so a reprint is
// a fresh derivation rather than a stored document. Totals are taken from the payment as stored
// at creation time and are never recomputed; only line amounts fall back to unit price times
// quantity when the server omitted a line subtotal.
//
// Example usage:
//
//	deriver := services.NewReceiptDeriver(time.UTC)
//	receipt, err := deriver.Derive(o, o.Payment)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(receipt.Lines[0].Text())
type ReceiptDeriver struct {
	location *time.Location
}

// NewReceiptDeriver returns a deriver formatting timestamps in loc (UTC when nil).
func NewReceiptDeriver(loc *time.Location) ReceiptDeriver {
	if loc == nil {
		loc = time.UTC
	}
	return ReceiptDeriver{location: loc}
}

// Derive builds the receipt for o paid by p.
//
// Returns:
//   - ValueIsRequiredError if p is nil
//   - ValueIsInvalidError if p belongs to another order
func (d ReceiptDeriver) Derive(o order.Order, p *payment.Payment) (Receipt, error) {
	if p == nil {
		return Receipt{}, errs.NewValueIsRequiredError("payment")
	}
	if p.OrderID != 0 && p.OrderID != o.ID {
		return Receipt{}, errs.NewValueIsInvalidErrorWithCause("payment",
			fmt.Errorf("receipt %d belongs to order %d, not %d", p.ID, p.OrderID, o.ID))
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = o.CreatedAt
	}

	receipt := Receipt{
		OrderID:         o.ID,
		ReceiptID:       p.ID,
		CustomerName:    customerName(o, p),
		CreatedAt:       createdAt,
		DeliveryAddress: o.DeliveryAddress,
		Lines:           make([]ReceiptLine, 0, len(o.Items)),
		Subtotal:        p.Subtotal,
		Tax:             p.Tax,
		Total:           p.Amount,
		Method:          p.Method,
		Status:          p.Status,
	}
	if !createdAt.IsZero() {
		receipt.Timestamp = createdAt.In(d.loc()).Format(ReceiptTimeLayout)
	}

	for _, item := range o.Items {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Quantity: item.Quantity,
			Name:     item.Name,
			Label:    fmt.Sprintf("%dx %s", item.Quantity, item.Name),
			Amount:   item.LineAmount(),
		})
	}

	return receipt, nil
}

func (d ReceiptDeriver) loc() *time.Location {
	if d.location == nil {
		return time.UTC
	}
	return d.location
}

func customerName(o order.Order, p *payment.Payment) string {
	if name := o.CustomerUsername(); name != "" {
		return name
	}
	if p.CustomerName != "" {
		return p.CustomerName
	}
	return GuestLabel
}
