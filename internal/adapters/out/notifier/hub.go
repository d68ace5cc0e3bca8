// Package notifier implements the store-scoped broadcast hub. Every live
// connection registers a bounded queue; publishing never blocks on a slow
// reader, it drops the event for that reader instead.
package notifier

import (
	"log/slog"
	"sync"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/metrics"
)

// DefaultQueueSize is the per-connection buffer used when none is given.
const DefaultQueueSize = 64

var _ ports.Notifier = (*Hub)(nil)

type subscriber struct {
	events   chan ports.Event
	storeKey kernel.StoreKey
}

// Hub routes events to connections grouped by store key. A connection
// belongs to at most one group.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[kernel.UUID]*subscriber
	groups      map[kernel.StoreKey]map[kernel.UUID]struct{}
	queueSize   int
	logger      *slog.Logger
}

// NewHub creates an empty hub. queueSize <= 0 selects DefaultQueueSize.
func NewHub(queueSize int, logger *slog.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		subscribers: make(map[kernel.UUID]*subscriber),
		groups:      make(map[kernel.StoreKey]map[kernel.UUID]struct{}),
		queueSize:   queueSize,
		logger:      logger.With("component", "notifier_hub"),
	}
}

// Register adds a connection that is not yet in any group and returns the
// queue its writer drains. The queue is closed by Unregister.
func (h *Hub) Register(connectionID kernel.UUID) (<-chan ports.Event, error) {
	if err := connectionID.Validate(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[connectionID]; ok {
		return nil, errs.NewValueIsInvalidError("connection_id already registered")
	}
	sub := &subscriber{events: make(chan ports.Event, h.queueSize)}
	h.subscribers[connectionID] = sub
	metrics.Subscribers.Set(float64(len(h.subscribers)))
	return sub.events, nil
}

// Unregister removes the connection from its group and closes its queue.
// Unknown connections are ignored.
func (h *Hub) Unregister(connectionID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subscribers[connectionID]
	if !ok {
		return
	}
	h.leaveGroup(connectionID, sub)
	delete(h.subscribers, connectionID)
	close(sub.events)
	metrics.Subscribers.Set(float64(len(h.subscribers)))
}

// Subscribe puts the connection in storeKey's group. A connection already
// in another group is moved, never duplicated.
func (h *Hub) Subscribe(connectionID kernel.UUID, storeKey kernel.StoreKey) error {
	if err := storeKey.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sub, ok := h.subscribers[connectionID]
	if !ok {
		return errs.NewObjectNotFoundError("connection_id", connectionID)
	}
	if sub.storeKey == storeKey {
		return nil
	}
	h.leaveGroup(connectionID, sub)

	group, ok := h.groups[storeKey]
	if !ok {
		group = make(map[kernel.UUID]struct{})
		h.groups[storeKey] = group
	}
	group[connectionID] = struct{}{}
	sub.storeKey = storeKey
	return nil
}

// StoreOf returns the group the connection is subscribed to.
func (h *Hub) StoreOf(connectionID kernel.UUID) (kernel.StoreKey, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sub, ok := h.subscribers[connectionID]
	if !ok || sub.storeKey == "" {
		return "", false
	}
	return sub.storeKey, true
}

// GroupSize returns the number of connections subscribed to storeKey.
func (h *Hub) GroupSize(storeKey kernel.StoreKey) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[storeKey])
}

// Publish delivers to storeKey's group only. An empty key publishes nothing.
func (h *Hub) Publish(storeKey kernel.StoreKey, name string, payload any) {
	if storeKey == "" {
		h.logger.Warn("Refusing to publish without a store key", "event", name)
		return
	}

	event := ports.Event{Name: name, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id := range h.groups[storeKey] {
		h.deliver(id, h.subscribers[id], event)
	}
	metrics.EventsPublishedTotal.WithLabelValues("store", name).Inc()
}

// PublishUnicast delivers to a single connection, whichever group it is in.
func (h *Hub) PublishUnicast(connectionID kernel.UUID, name string, payload any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sub, ok := h.subscribers[connectionID]
	if !ok {
		return
	}
	h.deliver(connectionID, sub, ports.Event{Name: name, Payload: payload})
	metrics.EventsPublishedTotal.WithLabelValues("unicast", name).Inc()
}

// PublishGlobal delivers to every registered connection.
func (h *Hub) PublishGlobal(name string, payload any) {
	event := ports.Event{Name: name, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, sub := range h.subscribers {
		h.deliver(id, sub, event)
	}
	metrics.EventsPublishedTotal.WithLabelValues("global", name).Inc()
}

// deliver must be called with mu held; Unregister closes queues only under
// the write lock, so the send cannot hit a closed channel.
func (h *Hub) deliver(id kernel.UUID, sub *subscriber, event ports.Event) {
	if sub == nil {
		return
	}
	select {
	case sub.events <- event:
	default:
		metrics.EventsDroppedTotal.Inc()
		h.logger.Warn("Subscriber queue is full, event dropped",
			"connection_id", id.String(), "event", event.Name)
	}
}

func (h *Hub) leaveGroup(id kernel.UUID, sub *subscriber) {
	if sub.storeKey == "" {
		return
	}
	group := h.groups[sub.storeKey]
	delete(group, id)
	if len(group) == 0 {
		delete(h.groups, sub.storeKey)
	}
	sub.storeKey = ""
}
