package commands

import (
	"context"

	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/ports"
)

// CreateOrderResult is returned to the store that created the order. It is
// the only place the delivery code leaves the core in clear text.
type CreateOrderResult struct {
	Order        *order.Order
	OrderID      order.ID
	DeliveryCode string
}

// CreateOrderCommandHandler persists a new Pending order and tells the
// store's dashboards to refresh.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	now        Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	now Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        now,
	}
}

// Handle generates the order ID and delivery code, persists the order and
// publishes refresh_admin once the commit succeeded.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	code, err := order.NewRandomDeliveryCode()
	if err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(order.NewID(), cmd.StoreKey(), cmd.Details(), code, h.now())
	if err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	h.notifier.Publish(o.StoreKey(), ports.EventRefreshAdmin, nil)

	return CreateOrderResult{
		Order:        o,
		OrderID:      o.ID(),
		DeliveryCode: code.Reveal(),
	}, nil
}
