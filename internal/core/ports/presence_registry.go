package ports

import (
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/presence"
)

// PresenceRegistry is the in-memory table of connected couriers, keyed by
// phone. Its operations never fail for "already exists" or "not found".
type PresenceRegistry interface {
	// Join upserts the courier's entry; a second join for the same phone
	// replaces the entry in place.
	Join(storeKey kernel.StoreKey, phone kernel.Phone, name string, connectionID kernel.UUID, at time.Time) (presence.Entry, error)

	// ReportLocation updates the courier's position. When no entry exists
	// one is created from fallback.
	ReportLocation(phone kernel.Phone, loc kernel.Location, fallback PresenceFallback, at time.Time) (presence.Entry, error)

	// Drop removes the entry bound to connectionID and returns it.
	Drop(connectionID kernel.UUID) (presence.Entry, bool)

	// FindByPhone returns the courier's entry, if any.
	FindByPhone(phone kernel.Phone) (presence.Entry, bool)

	// ListByStore returns a snapshot of one store's entries.
	ListByStore(storeKey kernel.StoreKey) []presence.Entry

	// SweepStale removes and returns every entry older than threshold at now.
	SweepStale(now time.Time, threshold time.Duration) []presence.Entry
}

// PresenceFallback carries what the caller's connection knows about the
// courier, used when a location report arrives before any join.
type PresenceFallback struct {
	StoreKey     kernel.StoreKey
	Name         string
	ConnectionID kernel.UUID
}
