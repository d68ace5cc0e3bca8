package commands

import (
	"context"

	"logistica/internal/core/domain/model/presence"
	"logistica/internal/core/ports"
)

// CourierLocationCommandHandler records a position and publishes update_map
// to the courier's current store.
type CourierLocationCommandHandler struct {
	registry ports.PresenceRegistry
	notifier ports.Notifier
	now      Clock
}

func NewCourierLocationCommandHandler(
	registry ports.PresenceRegistry,
	notifier ports.Notifier,
	now Clock,
) CourierLocationCommandHandler {
	return CourierLocationCommandHandler{
		registry: registry,
		notifier: notifier,
		now:      now,
	}
}

// Handle fails only when the courier is unknown and the fallback carries no
// store to attach the new entry to.
func (h *CourierLocationCommandHandler) Handle(_ context.Context, cmd CourierLocationCommand) (presence.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return presence.Entry{}, err
	}

	entry, err := h.registry.ReportLocation(cmd.Phone(), cmd.Location(), cmd.Fallback(), h.now())
	if err != nil {
		return presence.Entry{}, err
	}

	h.notifier.Publish(entry.StoreKey(), ports.EventUpdateMap, newCourierLocationPayload(entry))
	return entry, nil
}
