package commands

import (
	"context"

	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/keylock"
)

// CompleteOrderCommandHandler turns a live order into a history record.
// The record insert and the order delete share one transaction, so an
// order is never live and archived at the same time.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	locks      *keylock.Set
	now        Clock
}

func NewCompleteOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	locks *keylock.Set,
	now Clock,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
		now:        now,
	}
}

// Handle archives the order and publishes refresh_admin after the commit.
// An order that is missing or belongs to another store yields an
// ObjectNotFoundError and nothing is written.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*history.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(cmd.StoreKey()) {
		return nil, errs.NewObjectNotFoundError("order_id", cmd.OrderID())
	}

	if err = o.Complete(); err != nil {
		return nil, err
	}

	record, err := history.NewRecordFromOrder(o, cmd.Signature(), h.now())
	if err != nil {
		return nil, err
	}

	if err = uow.HistoryRepository().Add(ctx, record); err != nil {
		return nil, err
	}
	if err = orders.Delete(ctx, o.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Publish(o.StoreKey(), ports.EventRefreshAdmin, nil)
	return record, nil
}
