package order

import (
	"errors"
	"fmt"
	"time"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/pkg/errs"
)

// Order is a snapshot of a server-owned order. The terminal never assigns its id or status and
// never changes the status locally: a status change is requested remotely and the order list is
// fetched again.
type Order struct {
	ID              int64
	Status          Status
	Items           []Item
	TotalAmount     kernel.Money
	Customer        *Customer
	DeliveryAddress string
	BranchID        int64
	CreatedAt       time.Time

	// Payment is the receipt created for the order, nil until one exists.
	Payment *payment.Payment
}

// Item is one ordered line as priced by the server.
type Item struct {
	MenuItemID int64
	Name       string
	Quantity   int
	UnitPrice  kernel.Money
	Subtotal   kernel.Money
}

// Customer references the user who owns the order.
type Customer struct {
	ID       int64
	Username string
}

// Validate checks a snapshot decoded from the remote API.
func (o Order) Validate() error {
	var idErr error
	if o.ID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not a valid order id", o.ID))
	}
	return errors.Join(idErr, o.Status.Validate())
}

// CustomerUsername returns the owner's username or "" for anonymous orders.
func (o Order) CustomerUsername() string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.Username
}

// LineAmount is the item's own subtotal when the server sent one, otherwise unit price times
// quantity.
func (i Item) LineAmount() kernel.Money {
	if !i.Subtotal.IsZero() {
		return i.Subtotal
	}
	return i.UnitPrice.Mul(i.Quantity)
}
