package cart

import (
	"fmt"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/pkg/errs"
)

// Line is one staged entry of the cart. Its id is generated locally and only addresses the line
// inside the cart; the server never sees it.
type Line struct {
	id       kernel.UUID
	menuItem MenuItem
	quantity int
}

func (l Line) ID() kernel.UUID {
	return l.id
}

func (l Line) MenuItem() MenuItem {
	return l.menuItem
}

func (l Line) Quantity() int {
	return l.quantity
}

// Total is price times quantity.
func (l Line) Total() kernel.Money {
	return l.menuItem.price.Mul(l.quantity)
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}
