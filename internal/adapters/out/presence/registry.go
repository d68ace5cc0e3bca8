// Package presence implements the courier presence registry: an in-memory
// table keyed by courier phone, guarded by a single mutex.
package presence

import (
	"sort"
	"sync"
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/presence"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/metrics"
)

var _ ports.PresenceRegistry = (*Registry)(nil)

// Registry holds at most one entry per phone. All mutations take the same
// lock, so a join, report, drop or sweep never observes another one half
// done.
type Registry struct {
	mu      sync.Mutex
	byPhone map[kernel.Phone]presence.Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byPhone: make(map[kernel.Phone]presence.Entry),
	}
}

// Join upserts by phone. A courier reconnecting keeps its last position but
// takes the new store, name and connection. A connection binds one courier,
// so any other phone still holding connectionID is evicted.
func (r *Registry) Join(
	storeKey kernel.StoreKey,
	phone kernel.Phone,
	name string,
	connectionID kernel.UUID,
	at time.Time,
) (presence.Entry, error) {
	if err := storeKey.Validate(); err != nil {
		return presence.Entry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byPhone[phone]
	if ok {
		entry = entry.Rejoined(storeKey, name, connectionID, at)
	} else {
		created, err := presence.NewEntry(storeKey, phone, name, connectionID, at)
		if err != nil {
			return presence.Entry{}, err
		}
		entry = created
	}

	r.releaseConnection(connectionID, phone)
	r.byPhone[phone] = entry
	r.observe()
	return entry, nil
}

// ReportLocation updates position and last_seen, creating the entry from
// fallback when the courier has not joined yet. A non-zero
// fallback.ConnectionID replaces the stored handle, since the report arrived
// over that connection.
func (r *Registry) ReportLocation(
	phone kernel.Phone,
	loc kernel.Location,
	fallback ports.PresenceFallback,
	at time.Time,
) (presence.Entry, error) {
	if err := loc.Validate(); err != nil {
		return presence.Entry{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byPhone[phone]
	if !ok {
		created, err := presence.NewEntry(fallback.StoreKey, phone, fallback.Name, fallback.ConnectionID, at)
		if err != nil {
			return presence.Entry{}, err
		}
		entry = created
	} else if !fallback.ConnectionID.IsZero() && !entry.ConnectionID().IsEqual(fallback.ConnectionID) {
		entry = entry.Rejoined("", "", fallback.ConnectionID, at)
	}
	r.releaseConnection(fallback.ConnectionID, phone)

	entry = entry.Located(loc, at)
	r.byPhone[phone] = entry
	r.observe()
	return entry, nil
}

// Drop removes the entry whose connection handle is connectionID. Join and
// ReportLocation keep a handle on at most one entry. A courier that already
// reconnected over a new connection is left alone.
func (r *Registry) Drop(connectionID kernel.UUID) (presence.Entry, bool) {
	if connectionID.IsZero() {
		return presence.Entry{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for phone, entry := range r.byPhone {
		if entry.ConnectionID().IsEqual(connectionID) {
			delete(r.byPhone, phone)
			r.observe()
			return entry, true
		}
	}
	return presence.Entry{}, false
}

// FindByPhone returns the courier's entry.
func (r *Registry) FindByPhone(phone kernel.Phone) (presence.Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byPhone[phone]
	return entry, ok
}

// ListByStore returns one store's entries sorted by name, then phone.
func (r *Registry) ListByStore(storeKey kernel.StoreKey) []presence.Entry {
	r.mu.Lock()
	entries := make([]presence.Entry, 0)
	for _, entry := range r.byPhone {
		if entry.StoreKey() == storeKey {
			entries = append(entries, entry)
		}
	}
	r.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name() != entries[j].Name() {
			return entries[i].Name() < entries[j].Name()
		}
		return entries[i].Phone() < entries[j].Phone()
	})
	return entries
}

// SweepStale evicts entries whose last_seen is more than threshold before
// now. An entry exactly threshold old survives.
func (r *Registry) SweepStale(now time.Time, threshold time.Duration) []presence.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []presence.Entry
	for phone, entry := range r.byPhone {
		if entry.IsStale(now, threshold) {
			delete(r.byPhone, phone)
			removed = append(removed, entry)
		}
	}

	if len(removed) > 0 {
		metrics.PresenceEvictionsTotal.Add(float64(len(removed)))
		r.observe()
	}
	return removed
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byPhone)
}

// releaseConnection evicts every entry other than keep's that holds
// connectionID. Must be called with mu held.
func (r *Registry) releaseConnection(connectionID kernel.UUID, keep kernel.Phone) {
	if connectionID.IsZero() {
		return
	}
	for phone, entry := range r.byPhone {
		if phone != keep && entry.ConnectionID().IsEqual(connectionID) {
			delete(r.byPhone, phone)
		}
	}
}

// observe must be called with mu held.
func (r *Registry) observe() {
	metrics.OnlineCouriers.Set(float64(len(r.byPhone)))
}
