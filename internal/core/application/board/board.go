// Package board keeps the most recently fetched order list of a terminal.
//
// The list is only ever replaced wholesale by a fetch from the remote API; nothing patches an
// order locally. Concurrent refreshes race and the last one to finish wins.
package board

import (
	"sync"
	"time"

	"steakz/internal/core/domain/model/order"
)

type Board struct {
	mu          sync.RWMutex
	orders      []order.Order
	refreshedAt time.Time
	refreshed   bool
}

func New() *Board {
	return &Board{}
}

// Replace swaps in a freshly fetched list.
func (b *Board) Replace(orders []order.Order, at time.Time) {
	cp := make([]order.Order, len(orders))
	copy(cp, orders)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = cp
	b.refreshedAt = at
	b.refreshed = true
}

// Snapshot returns a copy of the current list.
func (b *Board) Snapshot() []order.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	cp := make([]order.Order, len(b.orders))
	copy(cp, b.orders)
	return cp
}

// Find returns the order with id from the current list.
func (b *Board) Find(id int64) (order.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return order.Order{}, false
}

// FindByReceipt returns the order whose payment has receiptID.
func (b *Board) FindByReceipt(receiptID int64) (order.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.Payment != nil && o.Payment.ID == receiptID {
			return o, true
		}
	}
	return order.Order{}, false
}

// RefreshedAt reports when the list was last replaced and whether it ever was.
func (b *Board) RefreshedAt() (time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.refreshedAt, b.refreshed
}
