package ports

import (
	"context"

	"steakz/internal/core/domain/model/order"
)

// OrderEventPublisher announces placement so that other terminals (receipt screens, kitchen
// boards) can refresh without waiting for their next poll.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error
}
