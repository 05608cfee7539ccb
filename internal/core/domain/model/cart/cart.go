package cart

import (
	"errors"

	"steakz/internal/core/domain/model/kernel"
)

// ErrEmptyCart is returned when an order is placed from a cart without lines.
var ErrEmptyCart = errors.New("your cart is empty")

// Cart is the ordered collection of staged lines.
//
// Invariants:
//   - no two lines share the same menu item id
//   - every stored quantity is at least 1
//
// Cart is not safe for concurrent use; the cart store serializes access.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add merges quantity into the line for item, or appends a new line with a fresh id.
func (c *Cart) Add(item MenuItem, quantity int) error {
	if err := errors.Join(item.Validate(), validateQuantity(quantity)); err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].menuItem.id == item.id {
			c.lines[i].quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, Line{id: kernel.NewUUID(), menuItem: item, quantity: quantity})
	return nil
}

// Remove deletes the line and reports whether it existed.
func (c *Cart) Remove(lineID kernel.UUID) bool {
	for i := range c.lines {
		if c.lines[i].id.IsEqual(lineID) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets the quantity of a line. A quantity <= 0 removes the line. Unknown ids are
// ignored. It reports whether the cart changed.
func (c *Cart) UpdateQuantity(lineID kernel.UUID, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(lineID)
	}

	for i := range c.lines {
		if c.lines[i].id.IsEqual(lineID) {
			c.lines[i].quantity = quantity
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line looks a line up by id.
func (c *Cart) Line(lineID kernel.UUID) (Line, bool) {
	for _, l := range c.lines {
		if l.id.IsEqual(lineID) {
			return l, true
		}
	}
	return Line{}, false
}

// TotalPrice sums price times quantity over all lines.
func (c *Cart) TotalPrice() kernel.Money {
	total := kernel.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

// TotalItems sums quantities over all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.quantity
	}
	return n
}
