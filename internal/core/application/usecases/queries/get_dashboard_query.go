package queries

import (
	"errors"
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/pkg/guard"
)

// DefaultHistoryLimit is how many history records a dashboard shows.
const DefaultHistoryLimit = 20

var ErrGetDashboardQueryIsNotConstructed = errors.New(
	"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
)

// GetDashboardQuery reads everything a store's dashboard renders.
//
// Example:
//
//	query, err := NewGetDashboardQuery("pizzaria-centro")
//	if err != nil {
//	    return err
//	}
//	dashboard, err := handler.Handle(ctx, query)
type GetDashboardQuery struct {
	storeKey kernel.StoreKey

	guard guard.ConstructorGuard
}

func NewGetDashboardQuery(storeKey string) (GetDashboardQuery, error) {
	key, err := kernel.NewStoreKey(storeKey)
	if err != nil {
		return GetDashboardQuery{}, err
	}
	return GetDashboardQuery{
		storeKey: key,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

func (q GetDashboardQuery) StoreKey() kernel.StoreKey { return q.storeKey }

// DashboardOrder is a live order as the dashboard shows it. The delivery
// code is deliberately absent.
type DashboardOrder struct {
	ID           string    `json:"id"`
	ClientName   string    `json:"client_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Price        float64   `json:"price"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Status       string    `json:"status"`
	CourierName  *string   `json:"courier_name"`
	CourierPhone *string   `json:"courier_phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// DashboardHistoryRecord is one completed delivery.
type DashboardHistoryRecord struct {
	ID           string    `json:"id"`
	ClientName   string    `json:"client_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Price        float64   `json:"price"`
	CourierName  string    `json:"courier_name"`
	CourierPhone string    `json:"courier_phone"`
	CompletedAt  time.Time `json:"completed_at"`
	Signature    string    `json:"signature"`
}

// DashboardCourier is an online courier. Lat and Lng are nil until the
// courier reports a position.
type DashboardCourier struct {
	Phone    string    `json:"phone"`
	Name     string    `json:"name"`
	Lat      *float64  `json:"lat"`
	Lng      *float64  `json:"lng"`
	LastSeen time.Time `json:"last_seen"`
}

// GetDashboardQueryResponse is the store's dashboard snapshot.
type GetDashboardQueryResponse struct {
	PendingOrders  []DashboardOrder         `json:"pendingOrders"`
	ActiveOrders   []DashboardOrder         `json:"activeOrders"`
	History        []DashboardHistoryRecord `json:"history"`
	OnlineCouriers []DashboardCourier       `json:"onlineCouriers"`
}
