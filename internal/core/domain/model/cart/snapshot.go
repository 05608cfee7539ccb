package cart

import (
	"errors"
	"fmt"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/pkg/errs"
)

// LineSnapshot is the persisted form of a Line.
type LineSnapshot struct {
	ID       kernel.UUID      `json:"id"`
	MenuItem MenuItemSnapshot `json:"menuItem"`
	Quantity int              `json:"quantity"`
}

type MenuItemSnapshot struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Price       kernel.Money `json:"price"`
	Description string       `json:"description,omitempty"`
}

// Snapshot returns the cart as plain data for persistence.
func (c *Cart) Snapshot() []LineSnapshot {
	out := make([]LineSnapshot, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, LineSnapshot{
			ID: l.id,
			MenuItem: MenuItemSnapshot{
				ID:          l.menuItem.id,
				Name:        l.menuItem.name,
				Price:       l.menuItem.price,
				Description: l.menuItem.description,
			},
			Quantity: l.quantity,
		})
	}
	return out
}

// Restore rebuilds a cart from persisted lines, enforcing the same invariants as Add.
func Restore(lines []LineSnapshot) (*Cart, error) {
	c := New()
	seen := make(map[int64]struct{}, len(lines))

	for i, s := range lines {
		item, err := NewMenuItem(s.MenuItem.ID, s.MenuItem.Name, s.MenuItem.Price, s.MenuItem.Description)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if err = errors.Join(s.ID.Validate(), validateQuantity(s.Quantity)); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if _, dup := seen[item.id]; dup {
			return nil, fmt.Errorf("line %d: %w", i,
				errs.NewValueIsInvalidErrorWithCause("menuItemId", fmt.Errorf("%d appears more than once", item.id)))
		}
		seen[item.id] = struct{}{}

		c.lines = append(c.lines, Line{id: s.ID, menuItem: item, quantity: s.Quantity})
	}

	return c, nil
}
