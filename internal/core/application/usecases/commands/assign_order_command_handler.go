package commands

import (
	"context"
	"errors"

	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/keylock"
)

// AssignOrderCommandHandler moves a Pending order OnRoute.
//
// Two assigns racing on one order are serialized twice: in process by the
// per-order lock, and in the database by an update conditional on the order
// still being Pending. The loser gets an InvalidTransitionError and the
// winner's courier stays on the order.
type AssignOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	presence   ports.PresenceRegistry
	notifier   ports.Notifier
	locks      *keylock.Set
}

// NewAssignOrderCommandHandler creates the handler. locks must be shared by
// every handler that mutates orders.
func NewAssignOrderCommandHandler(
	uowFactory OrderUoWFactory,
	presence ports.PresenceRegistry,
	notifier ports.Notifier,
	locks *keylock.Set,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		notifier:   notifier,
		locks:      locks,
	}
}

// Handle assigns the courier, commits, then publishes refresh_admin to the
// store and refresh_driver to the courier when the courier is connected.
// A missing order, or one that belongs to another store, is reported as an
// invalid transition.
func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewInvalidTransitionErrorWithCause("assign", "missing order", err)
		}
		return err
	}
	if !o.BelongsTo(cmd.StoreKey()) {
		return errs.NewInvalidTransitionErrorWithCause("assign", "missing order",
			errs.NewObjectNotFoundError("order_id", cmd.OrderID()))
	}

	expected := o.Status()
	if err = o.Assign(cmd.Courier()); err != nil {
		return err
	}

	if err = repo.UpdateStatus(ctx, o, expected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(o.StoreKey(), ports.EventRefreshAdmin, nil)

	if entry, ok := h.presence.FindByPhone(cmd.Courier().Phone()); ok && !entry.ConnectionID().IsZero() {
		h.notifier.PublishUnicast(entry.ConnectionID(), ports.EventRefreshDriver, AssignmentPayload{
			OrderID: o.ID().String(),
		})
	}

	return nil
}
