package ports

import (
	"logistica/internal/core/domain/model/kernel"
)

// Event names understood by dashboards and courier apps.
const (
	EventRefreshAdmin     = "refresh_admin"
	EventUpdateMap        = "update_map"
	EventRefreshDriver    = "refresh_driver"
	EventNewChatMessage   = "new_chat_message"
	EventServerRestarting = "server_restarting"
)

// Event is one message delivered to a subscriber.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"data,omitempty"`
}

// Notifier fans events out to live connections. Delivery is best-effort:
// none of its methods can fail the operation that triggered them.
type Notifier interface {
	// Publish delivers to every connection subscribed to storeKey.
	Publish(storeKey kernel.StoreKey, name string, payload any)

	// PublishUnicast delivers to one connection; a no-op when it is gone.
	PublishUnicast(connectionID kernel.UUID, name string, payload any)

	// PublishGlobal delivers to every connection of every store. Reserved
	// for messages that carry no tenant data.
	PublishGlobal(name string, payload any)
}
