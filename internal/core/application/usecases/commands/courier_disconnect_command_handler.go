package commands

import (
	"context"

	"logistica/internal/core/ports"
)

// CourierDisconnectCommandHandler drops the presence entry bound to a closed
// connection. Connections that never joined as couriers are a no-op.
type CourierDisconnectCommandHandler struct {
	registry ports.PresenceRegistry
	notifier ports.Notifier
}

func NewCourierDisconnectCommandHandler(
	registry ports.PresenceRegistry,
	notifier ports.Notifier,
) CourierDisconnectCommandHandler {
	return CourierDisconnectCommandHandler{
		registry: registry,
		notifier: notifier,
	}
}

// Handle reports whether an entry was removed.
func (h *CourierDisconnectCommandHandler) Handle(_ context.Context, cmd CourierDisconnectCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	entry, ok := h.registry.Drop(cmd.ConnectionID())
	if !ok {
		return false, nil
	}

	h.notifier.Publish(entry.StoreKey(), ports.EventRefreshAdmin, nil)
	return true, nil
}
