package commands

import (
	"context"

	"logistica/internal/core/domain/model/presence"
	"logistica/internal/core/ports"
)

// CourierJoinCommandHandler upserts the courier's presence entry and
// refreshes the store's dashboards.
type CourierJoinCommandHandler struct {
	registry ports.PresenceRegistry
	notifier ports.Notifier
	now      Clock
}

func NewCourierJoinCommandHandler(
	registry ports.PresenceRegistry,
	notifier ports.Notifier,
	now Clock,
) CourierJoinCommandHandler {
	return CourierJoinCommandHandler{
		registry: registry,
		notifier: notifier,
		now:      now,
	}
}

func (h *CourierJoinCommandHandler) Handle(_ context.Context, cmd CourierJoinCommand) (presence.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return presence.Entry{}, err
	}

	entry, err := h.registry.Join(cmd.StoreKey(), cmd.Phone(), cmd.Name(), cmd.ConnectionID(), h.now())
	if err != nil {
		return presence.Entry{}, err
	}

	h.notifier.Publish(entry.StoreKey(), ports.EventRefreshAdmin, nil)
	return entry, nil
}
