package ws

import (
	"encoding/json"
	"errors"
	"strings"
)

// Inbound event names.
const (
	eventJoinStore       = "join_store"
	eventDriverJoin      = "driver_join"
	eventDriverLocation  = "driver_location"
	eventSendChatMessage = "send_chat_message"
)

// Envelope is every frame exchanged on the link, in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type storePayload struct {
	StoreKey string `json:"store_slug"`
}

type driverJoinPayload struct {
	StoreKey string `json:"store_slug"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
}

type driverLocationPayload struct {
	StoreKey string  `json:"store_slug"`
	Phone    string  `json:"phone"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// decodeChatPayload keeps every field of the frame except store_slug; the
// message always goes to the sender's group.
func decodeChatPayload(raw json.RawMessage) (map[string]any, error) {
	var p map[string]any
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("empty chat message")
	}
	delete(p, "store_slug")
	return p, nil
}

// decodeStoreKey accepts both a bare JSON string and {"store_slug": "..."}.
func decodeStoreKey(raw json.RawMessage) (string, error) {
	var key string
	if err := json.Unmarshal(raw, &key); err == nil {
		return strings.TrimSpace(key), nil
	}

	var p storePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", err
	}
	return strings.TrimSpace(p.StoreKey), nil
}
