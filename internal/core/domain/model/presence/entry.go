package presence

import (
	"errors"
	"strings"
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/guard"
)

// ErrEntryIsNotConstructed is returned when a zero-value Entry is used.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is a value: every update returns a new Entry, so snapshots handed
// to readers never change under them.
type Entry struct { //nolint:recvcheck //using for validation
	phone        kernel.Phone
	storeKey     kernel.StoreKey
	name         string
	connectionID kernel.UUID
	location     kernel.Location
	hasLocation  bool
	lastSeen     time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates the entry of a courier seen for the first time.
// connectionID may be zero when the courier reports through a channel that
// cannot receive unicast events. An empty name falls back to the phone.
func NewEntry(
	storeKey kernel.StoreKey,
	phone kernel.Phone,
	name string,
	connectionID kernel.UUID,
	at time.Time,
) (Entry, error) {
	var atErr error
	if at.IsZero() {
		atErr = errs.NewValueIsRequiredError("last_seen")
	}
	if err := errors.Join(storeKey.Validate(), phone.Validate(), atErr); err != nil {
		return Entry{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = phone.String()
	}

	return Entry{
		phone:        phone,
		storeKey:     storeKey,
		name:         name,
		connectionID: connectionID,
		lastSeen:     at,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrEntryIsNotConstructed for a zero value.
func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// Rejoined returns the entry after the courier (re)joined storeKey over a
// new connection. The last known position is kept; last_seen never moves
// backwards.
func (e Entry) Rejoined(storeKey kernel.StoreKey, name string, connectionID kernel.UUID, at time.Time) Entry {
	if storeKey != "" {
		e.storeKey = storeKey
	}
	if name = strings.TrimSpace(name); name != "" {
		e.name = name
	}
	e.connectionID = connectionID
	return e.Touched(at)
}

// Located returns the entry with a new position.
func (e Entry) Located(loc kernel.Location, at time.Time) Entry {
	e.location = loc
	e.hasLocation = true
	return e.Touched(at)
}

// Touched returns the entry with last_seen advanced to at, unless it is
// already later.
func (e Entry) Touched(at time.Time) Entry {
	if at.After(e.lastSeen) {
		e.lastSeen = at
	}
	return e
}

// IsStale reports whether the entry is older than threshold at now. An entry
// exactly threshold old is not stale.
func (e Entry) IsStale(now time.Time, threshold time.Duration) bool {
	return now.Sub(e.lastSeen) > threshold
}

// Phone returns the natural key.
func (e Entry) Phone() kernel.Phone {
	return e.phone
}

// StoreKey returns the store the courier is currently associated with.
func (e Entry) StoreKey() kernel.StoreKey {
	return e.storeKey
}

// Name returns the courier's display name.
func (e Entry) Name() string {
	return e.name
}

// ConnectionID returns the handle used for unicast events, possibly zero.
func (e Entry) ConnectionID() kernel.UUID {
	return e.connectionID
}

// Location returns the last reported position and whether one exists.
func (e Entry) Location() (kernel.Location, bool) {
	return e.location, e.hasLocation
}

// LastSeen returns the time of the latest heartbeat or location report.
func (e Entry) LastSeen() time.Time {
	return e.lastSeen
}
