package commands

import (
	"errors"

	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/guard"
)

var ErrDeleteHistoryCommandIsNotConstructed = errors.New(
	"DeleteHistoryCommand must be created via NewDeleteHistoryCommand constructor",
)

// DeleteHistoryCommand removes one delivery history record. History records
// share the ID of the order they archive.
type DeleteHistoryCommand struct { //nolint:recvcheck //using for validation
	recordID order.ID

	guard guard.ConstructorGuard
}

func NewDeleteHistoryCommand(recordID string) (DeleteHistoryCommand, error) {
	id, err := order.IDFromString(recordID)
	if err != nil {
		return DeleteHistoryCommand{}, err
	}
	return DeleteHistoryCommand{
		recordID: id,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteHistoryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteHistoryCommandIsNotConstructed)
}

func (c DeleteHistoryCommand) RecordID() order.ID {
	return c.recordID
}
