// Package rabbitmq publishes order events to a RabbitMQ fanout exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"steakz/internal/core/domain/model/order"

	"github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "order_events"

	// OrderPlacedType is set as the AMQP message type so consumers can route without decoding.
	OrderPlacedType = "order.placed"

	publishTimeout = 5 * time.Second
)

// Channel is the subset of *amqp091.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher implements ports.OrderEventPublisher.
type Publisher struct {
	ch       Channel
	conn     *amqp091.Connection
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

// NewPublisher declares a durable fanout exchange on ch and returns a publisher bound to it.
func NewPublisher(ch Channel, exchange string, logger *slog.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if logger == nil {
		logger = slog.Default()
	}

	err := ch.ExchangeDeclare(
		exchange,
		amqp091.ExchangeFanout,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Publisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With("component", "order_events", "exchange", exchange),
		now:      time.Now,
	}, nil
}

// Dial connects to url, retrying with a linear backoff, and returns a publisher that owns the
// connection.
func Dial(ctx context.Context, url, exchange string, attempts int, logger *slog.Logger) (*Publisher, error) {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	var err error
	for i := range attempts {
		var conn *amqp091.Connection
		conn, err = amqp091.Dial(url)
		if err == nil {
			var ch *amqp091.Channel
			ch, err = conn.Channel()
			if err == nil {
				var p *Publisher
				p, err = NewPublisher(ch, exchange, logger)
				if err == nil {
					p.conn = conn
					return p, nil
				}
				_ = ch.Close()
			}
			_ = conn.Close()
		}

		if i == attempts-1 {
			break
		}

		wait := time.Duration(i+1) * 2 * time.Second
		logger.Warn("rabbitmq connection failed, retrying", "attempt", i+1, "wait", wait, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, fmt.Errorf("connect to rabbitmq after %d attempts: %w", attempts, err)
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, event order.PlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := amqp091.Publishing{
		ContentType:  "application/json",
		Type:         OrderPlacedType,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    p.now(),
		MessageId:    fmt.Sprintf("order-%d", event.OrderID),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, msg); err != nil {
		return fmt.Errorf("publish order placed: %w", err)
	}

	p.logger.Debug("order placed event published", "orderId", event.OrderID, "size", len(body))
	return nil
}

// Close releases the channel and, when the publisher dialed it, the connection.
func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, order.PlacedEvent) error {
	return nil
}
