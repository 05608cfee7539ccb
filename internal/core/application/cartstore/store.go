// Package cartstore keeps the terminal's cart in memory and mirrors every change to durable
// storage so the cart survives a restart.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"steakz/internal/core/domain/model/cart"
	"steakz/internal/core/domain/model/kernel"
	"steakz/internal/core/ports"
)

// StorageKey is the fixed key the cart is persisted under.
const StorageKey = "cart_items"

// ErrPersistedStateCorrupt marks a stored cart that could not be decoded. It is logged and the
// store starts empty; callers never receive it.
var ErrPersistedStateCorrupt = errors.New("persisted cart state is corrupt")

// Contents is a consistent view of the cart taken under a single lock.
type Contents struct {
	Lines      []cart.Line
	TotalPrice kernel.Money
	TotalItems int
}

// Store is the cart store of one terminal. All methods are safe for concurrent use; mutations
// are serialized and each one is persisted before the lock is released.
type Store struct {
	mu      sync.Mutex
	cart    *cart.Cart
	storage ports.CartStorage
	logger  *slog.Logger
}

// New restores the cart from storage. Missing, unreadable or corrupt state yields an empty cart.
func New(ctx context.Context, storage ports.CartStorage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		storage: storage,
		logger:  logger.With("component", "cart_store"),
	}
	s.cart = s.load(ctx)
	return s
}

// AddToCart merges quantity of item into the cart.
func (s *Store) AddToCart(ctx context.Context, item cart.MenuItem, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Add(item, quantity); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// RemoveFromCart deletes a line. Removing an absent line is not an error.
func (s *Store) RemoveFromCart(ctx context.Context, lineID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.Remove(lineID) {
		s.persist(ctx)
	}
}

// UpdateQuantity replaces a line's quantity; zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, lineID kernel.UUID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.UpdateQuantity(lineID, quantity) {
		s.persist(ctx)
	}
}

// ClearCart empties the cart and persists the empty state.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.persist(ctx)
}

func (s *Store) TotalPrice() kernel.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

func (s *Store) Lines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

// Contents returns lines and totals from the same moment.
func (s *Store) Contents() Contents {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Contents{
		Lines:      s.cart.Lines(),
		TotalPrice: s.cart.TotalPrice(),
		TotalItems: s.cart.TotalItems(),
	}
}

// persist must be called with mu held. Failures are logged only. The write is not tied to the
// caller's cancellation: the in-memory cart has already changed and storage must follow it.
func (s *Store) persist(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	data, err := json.Marshal(s.cart.Snapshot())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode cart", "error", err)
		return
	}
	if err = s.storage.Save(ctx, StorageKey, data); err != nil {
		s.logger.WarnContext(ctx, "failed to persist cart", "key", StorageKey, "error", err)
	}
}

func (s *Store) load(ctx context.Context) *cart.Cart {
	data, found, err := s.storage.Load(ctx, StorageKey)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load cart, starting empty", "key", StorageKey, "error", err)
		return cart.New()
	}
	if !found || len(data) == 0 {
		return cart.New()
	}

	restored, err := decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding stored cart", "key", StorageKey, "error", err)
		return cart.New()
	}

	s.logger.InfoContext(ctx, "cart restored", "lines", len(restored.Lines()))
	return restored
}

func decode(data []byte) (*cart.Cart, error) {
	var lines []cart.LineSnapshot
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistedStateCorrupt, err)
	}
	c, err := cart.Restore(lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistedStateCorrupt, err)
	}
	return c, nil
}
