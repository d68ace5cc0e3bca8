package commands

import (
	"time"

	"logistica/internal/core/domain/model/presence"
)

// AssignmentPayload is sent to the courier who just got an order.
type AssignmentPayload struct {
	OrderID string `json:"order_id"`
}

// CourierLocationPayload is the update_map body.
type CourierLocationPayload struct {
	StoreKey string    `json:"store_key"`
	Phone    string    `json:"phone"`
	Name     string    `json:"name"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	LastSeen time.Time `json:"last_seen"`
}

func newCourierLocationPayload(e presence.Entry) CourierLocationPayload {
	loc, _ := e.Location()
	return CourierLocationPayload{
		StoreKey: e.StoreKey().String(),
		Phone:    e.Phone().String(),
		Name:     e.Name(),
		Lat:      loc.Lat(),
		Lng:      loc.Lng(),
		LastSeen: e.LastSeen(),
	}
}
