package commands

import (
	"errors"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/pkg/guard"
)

var ErrCourierDisconnectCommandIsNotConstructed = errors.New(
	"CourierDisconnectCommand must be created via NewCourierDisconnectCommand constructor",
)

// CourierDisconnectCommand reports that a connection closed.
type CourierDisconnectCommand struct { //nolint:recvcheck //using for validation
	connectionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCourierDisconnectCommand(connectionID kernel.UUID) (CourierDisconnectCommand, error) {
	if err := connectionID.Validate(); err != nil {
		return CourierDisconnectCommand{}, err
	}
	return CourierDisconnectCommand{
		connectionID: connectionID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CourierDisconnectCommand) Validate() error {
	return c.guard.Validate(ErrCourierDisconnectCommandIsNotConstructed)
}

func (c CourierDisconnectCommand) ConnectionID() kernel.UUID {
	return c.connectionID
}
