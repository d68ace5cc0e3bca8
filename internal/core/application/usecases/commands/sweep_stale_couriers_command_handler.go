package commands

import (
	"context"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/presence"
	"logistica/internal/core/ports"
)

// SweepStaleCouriersCommandHandler is the safety net for disconnects the
// gateway never saw.
type SweepStaleCouriersCommandHandler struct {
	registry ports.PresenceRegistry
	notifier ports.Notifier
}

func NewSweepStaleCouriersCommandHandler(
	registry ports.PresenceRegistry,
	notifier ports.Notifier,
) SweepStaleCouriersCommandHandler {
	return SweepStaleCouriersCommandHandler{
		registry: registry,
		notifier: notifier,
	}
}

// Handle returns the evicted entries and publishes one refresh_admin per
// store that lost at least one courier.
func (h *SweepStaleCouriersCommandHandler) Handle(_ context.Context, cmd SweepStaleCouriersCommand) ([]presence.Entry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	removed := h.registry.SweepStale(cmd.Now(), cmd.Threshold())

	notified := make(map[kernel.StoreKey]struct{}, len(removed))
	for _, entry := range removed {
		if _, done := notified[entry.StoreKey()]; done {
			continue
		}
		notified[entry.StoreKey()] = struct{}{}
		h.notifier.Publish(entry.StoreKey(), ports.EventRefreshAdmin, nil)
	}

	return removed, nil
}
