// Package rabbitmq mirrors store-scoped dispatch events to a RabbitMQ topic
// exchange so that other processes (reporting, a second gateway) can follow
// a store without holding a websocket.
package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "dispatch.events"

	publishTimeout = 2 * time.Second
)

// Message is the body published to the exchange.
type Message struct {
	StoreKey    string    `json:"store_key"`
	Event       string    `json:"event"`
	Data        any       `json:"data,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// Relay decorates a Notifier. Store-scoped events go to the wrapped
// notifier first and are then published with routing key
// "store.<storeKey>.<event>". Unicast and global events are not mirrored.
type Relay struct {
	next     ports.Notifier
	ch       Channel
	exchange string
	logger   *slog.Logger

	mu  sync.Mutex
	now func() time.Time
}

var _ ports.Notifier = (*Relay)(nil)

// NewRelay declares exchange as a durable topic exchange and returns the
// decorator.
func NewRelay(next ports.Notifier, ch Channel, exchange string, logger *slog.Logger) (*Relay, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &Relay{
		next:     next,
		ch:       ch,
		exchange: exchange,
		logger:   logger.With("component", "event_relay", "exchange", exchange),
		now:      time.Now,
	}, nil
}

// RoutingKey builds the topic key of one store event.
func RoutingKey(storeKey kernel.StoreKey, event string) string {
	return "store." + storeKey.String() + "." + event
}

func (r *Relay) Publish(storeKey kernel.StoreKey, name string, payload any) {
	r.next.Publish(storeKey, name, payload)

	if storeKey == "" {
		return
	}

	body, err := json.Marshal(Message{
		StoreKey:    storeKey.String(),
		Event:       name,
		Data:        payload,
		PublishedAt: r.now().UTC(),
	})
	if err != nil {
		r.logger.Error("failed to encode event", "event", name, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	r.mu.Lock()
	err = r.ch.PublishWithContext(ctx, r.exchange, RoutingKey(storeKey, name), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		Timestamp:    r.now().UTC(),
		Body:         body,
	})
	r.mu.Unlock()
	if err != nil {
		r.logger.Warn("failed to relay event",
			"store_key", storeKey.String(),
			"event", name,
			"error", err,
		)
	}
}

func (r *Relay) PublishUnicast(connectionID kernel.UUID, name string, payload any) {
	r.next.PublishUnicast(connectionID, name, payload)
}

func (r *Relay) PublishGlobal(name string, payload any) {
	r.next.PublishGlobal(name, payload)
}
