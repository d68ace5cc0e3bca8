package commands

import (
	"context"

	"logistica/internal/core/ports"
	"logistica/internal/pkg/keylock"
)

// DeleteOrderCommandHandler removes a live order. The order is read first:
// its store key decides which group hears about the deletion.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	locks      *keylock.Set
}

func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	locks *keylock.Set,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle deletes the order and publishes refresh_admin to its store.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock := h.locks.Lock(cmd.OrderID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = repo.Delete(ctx, o.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(o.StoreKey(), ports.EventRefreshAdmin, nil)
	return nil
}
