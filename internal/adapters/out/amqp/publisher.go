// Package amqp publishes integration events to a RabbitMQ topic exchange.
// Events are routed by their type (order.created, proposal.decided,
// delivery.status_changed), so downstream consumers bind only to the
// lifecycle slices they care about.
package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"agromarket/internal/core/application/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the topic exchange all marketplace events flow through.
const Exchange = "marketplace.events"

// EventPublisher implements ports.EventPublisher on top of a RabbitMQ
// channel with publisher confirms enabled. Publish blocks until the broker
// acks the message or the context is cancelled; confirms are serialized
// with a mutex because they arrive in publish order.
type EventPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	acks <-chan amqp.Confirmation
	mu   sync.Mutex
}

// NewEventPublisher dials the broker, declares the topic exchange, and
// enables publisher confirms.
func NewEventPublisher(url string) (*EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &EventPublisher{conn: conn, ch: ch, acks: acks}, nil
}

// Publish delivers an event to the exchange, routed by its type, and waits
// for the broker's confirm.
func (p *EventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(
		ctx,
		Exchange,
		event.EventType(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish event %s: %w", event.EventType(), err)
	}

	select {
	case conf := <-p.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the channel and the connection.
func (p *EventPublisher) Close() error {
	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
