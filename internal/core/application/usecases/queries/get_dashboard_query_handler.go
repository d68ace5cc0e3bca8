package queries

import (
	"context"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDashboardQueryHandler reads orders and history from the Order Store and
// online couriers from the presence table. The two sources are not read
// atomically; a dashboard is a best-effort snapshot refreshed on every
// refresh_admin.
type GetDashboardQueryHandler struct {
	db           *gorm.DB
	registry     ports.PresenceRegistry
	historyLimit int
}

// NewGetDashboardQueryHandler creates the handler. A non-positive
// historyLimit falls back to DefaultHistoryLimit.
func NewGetDashboardQueryHandler(
	db *gorm.DB,
	registry ports.PresenceRegistry,
	historyLimit int,
) GetDashboardQueryHandler {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return GetDashboardQueryHandler{
		db:           db,
		registry:     registry,
		historyLimit: historyLimit,
	}
}

func (h GetDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardQuery,
) (GetDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardQueryResponse{}, err
	}

	pending, err := h.orders(ctx, query.StoreKey(), order.Pending)
	if err != nil {
		return GetDashboardQueryResponse{}, err
	}
	active, err := h.orders(ctx, query.StoreKey(), order.OnRoute)
	if err != nil {
		return GetDashboardQueryResponse{}, err
	}

	history := make([]DashboardHistoryRecord, 0)
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_name,
			address,
			phone,
			price,
			courier_name,
			courier_phone,
			completed_at,
			signature
		FROM delivery_history
		WHERE store_key = ?
		ORDER BY completed_at DESC
		LIMIT ?
	`, query.StoreKey().String(), h.historyLimit).Scan(&history).Error
	if err != nil {
		return GetDashboardQueryResponse{}, errs.NewDurableStoreError("read history", err)
	}

	return GetDashboardQueryResponse{
		PendingOrders:  pending,
		ActiveOrders:   active,
		History:        history,
		OnlineCouriers: h.couriers(query.StoreKey()),
	}, nil
}

func (h GetDashboardQueryHandler) orders(
	ctx context.Context,
	storeKey kernel.StoreKey,
	status order.Status,
) ([]DashboardOrder, error) {
	orders := make([]DashboardOrder, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_name,
			address,
			phone,
			price,
			lat,
			lng,
			status,
			courier_name,
			courier_phone,
			created_at
		FROM orders
		WHERE store_key = ? AND status = ?
		ORDER BY created_at DESC
	`, storeKey.String(), status.String()).Scan(&orders).Error
	if err != nil {
		return nil, errs.NewDurableStoreError("read "+status.String()+" orders", err)
	}
	return orders, nil
}

func (h GetDashboardQueryHandler) couriers(storeKey kernel.StoreKey) []DashboardCourier {
	entries := h.registry.ListByStore(storeKey)
	couriers := make([]DashboardCourier, 0, len(entries))
	for _, e := range entries {
		c := DashboardCourier{
			Phone:    e.Phone().String(),
			Name:     e.Name(),
			LastSeen: e.LastSeen(),
		}
		if loc, ok := e.Location(); ok {
			lat, lng := loc.Lat(), loc.Lng()
			c.Lat, c.Lng = &lat, &lng
		}
		couriers = append(couriers, c)
	}
	return couriers
}
