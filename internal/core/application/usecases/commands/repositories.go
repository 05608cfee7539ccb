// Package commands contains the operations that change state: placing an order from the cart,
// requesting an order status change and refreshing the order board.
// Every command is built through its constructor and validated by its handler.
package commands

import (
	"context"
	"time"

	"steakz/internal/core/application/cartstore"
	"steakz/internal/core/domain/model/order"
)

// Collaborator interfaces the handlers depend on. The application packages cartstore and board
// satisfy them; tests substitute mocks.
type (
	// CartReader gives a consistent view of the staged cart.
	CartReader interface {
		Contents() cartstore.Contents
	}

	// CartClearer empties the staged cart.
	CartClearer interface {
		ClearCart(ctx context.Context)
	}

	// Cart is what order placement needs from the cart store.
	Cart interface {
		CartReader
		CartClearer
	}

	// OrderBoard is the last fetched order list.
	OrderBoard interface {
		Find(id int64) (order.Order, bool)
		Replace(orders []order.Order, at time.Time)
	}
)
