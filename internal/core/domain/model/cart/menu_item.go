package cart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/pkg/errs"
)

// MenuItem is the catalog reference a cart line points at. The cart keeps its own copy so the
// price shown at checkout is the one the customer added.
type MenuItem struct {
	id          int64
	name        string
	price       kernel.Money
	description string
}

func NewMenuItem(id int64, name string, price kernel.Money, description string) (MenuItem, error) {
	item := MenuItem{description: description}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setPrice(price),
	); err != nil {
		return MenuItem{}, err
	}

	return item, nil
}

func (m MenuItem) ID() int64 {
	return m.id
}

func (m MenuItem) Name() string {
	return m.name
}

func (m MenuItem) Price() kernel.Money {
	return m.price
}

func (m MenuItem) Description() string {
	return m.description
}

// Validate reports whether the item was built through NewMenuItem.
func (m MenuItem) Validate() error {
	if m.id <= 0 {
		return errs.NewValueIsRequiredError("menuItem")
	}
	return nil
}

func (m *MenuItem) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("menuItemId", id, int64(1), int64(math.MaxInt64))
	}
	m.id = id
	return nil
}

func (m *MenuItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("menuItemName")
	}
	m.name = name
	return nil
}

func (m *MenuItem) setPrice(price kernel.Money) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	m.price = price
	return nil
}
