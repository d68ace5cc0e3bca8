package commands

import (
	"context"

	"logistica/internal/core/ports"
)

// DeleteHistoryCommandHandler removes a history record and refreshes the
// owning store's dashboards.
type DeleteHistoryCommandHandler struct {
	uowFactory HistoryUoWFactory
	notifier   ports.Notifier
}

func NewDeleteHistoryCommandHandler(uowFactory HistoryUoWFactory, notifier ports.Notifier) DeleteHistoryCommandHandler {
	return DeleteHistoryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h *DeleteHistoryCommandHandler) Handle(ctx context.Context, cmd DeleteHistoryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.HistoryRepository()
	record, err := repo.Get(ctx, cmd.RecordID())
	if err != nil {
		return err
	}

	if err = repo.Delete(ctx, record.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Publish(record.StoreKey(), ports.EventRefreshAdmin, nil)
	return nil
}
