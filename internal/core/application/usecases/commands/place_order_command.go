package commands

import (
	"errors"
	"fmt"
	"strings"

	"steakz/internal/core/domain/model/identity"
	"steakz/internal/core/domain/model/payment"
	"steakz/internal/pkg/errs"
	"steakz/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand turns the staged cart into an order and its receipt.
//
// deliveryAddress carries a physical address when customers order for themselves and a
// customer name or walk-in note when staff order on someone's behalf. A nil caller is accepted
// here and rejected by the handler as unauthenticated.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(caller, "Table 4", nil, payment.Cash, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid placement: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct {
	caller          *identity.Identity
	deliveryAddress string
	branchID        *int64
	paymentMethod   payment.Method
	customerName    *string

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	caller *identity.Identity,
	deliveryAddress string,
	branchID *int64,
	paymentMethod payment.Method,
	customerName *string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		caller:          caller,
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBranchID(branchID),
		cmd.setPaymentMethod(paymentMethod),
		cmd.setCustomerName(customerName),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Caller() *identity.Identity {
	return c.caller
}

func (c PlaceOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// BranchID is the explicitly requested branch, or nil.
func (c PlaceOrderCommand) BranchID() *int64 {
	return c.branchID
}

func (c PlaceOrderCommand) PaymentMethod() payment.Method {
	return c.paymentMethod
}

// CustomerName is the name printed on the receipt, or nil for a walk-in customer.
func (c PlaceOrderCommand) CustomerName() *string {
	return c.customerName
}

func (c *PlaceOrderCommand) setBranchID(branchID *int64) error {
	if branchID == nil {
		return nil
	}
	if *branchID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("branchId", fmt.Errorf("%d is not a valid branch", *branchID))
	}
	b := *branchID
	c.branchID = &b
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(method payment.Method) error {
	if method == payment.UnknownMethod {
		method = payment.Cash
	}
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *PlaceOrderCommand) setCustomerName(name *string) error {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	c.customerName = &trimmed
	return nil
}
