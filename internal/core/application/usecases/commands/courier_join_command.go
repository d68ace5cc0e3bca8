package commands

import (
	"errors"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/pkg/guard"
)

var ErrCourierJoinCommandIsNotConstructed = errors.New(
	"CourierJoinCommand must be created via NewCourierJoinCommand constructor",
)

// CourierJoinCommand announces a courier connected to a store.
type CourierJoinCommand struct { //nolint:recvcheck //using for validation
	storeKey     kernel.StoreKey
	phone        kernel.Phone
	name         string
	connectionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCourierJoinCommand requires a store key and phone. connectionID may be
// zero for couriers that cannot receive unicast events.
func NewCourierJoinCommand(storeKey, phone, name string, connectionID kernel.UUID) (CourierJoinCommand, error) {
	key, keyErr := kernel.NewStoreKey(storeKey)
	p, phoneErr := kernel.NewPhone(phone)
	if err := errors.Join(keyErr, phoneErr); err != nil {
		return CourierJoinCommand{}, err
	}

	return CourierJoinCommand{
		storeKey:     key,
		phone:        p,
		name:         name,
		connectionID: connectionID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CourierJoinCommand) Validate() error {
	return c.guard.Validate(ErrCourierJoinCommandIsNotConstructed)
}

func (c CourierJoinCommand) StoreKey() kernel.StoreKey { return c.storeKey }
func (c CourierJoinCommand) Phone() kernel.Phone { return c.phone }
func (c CourierJoinCommand) Name() string { return c.name }
func (c CourierJoinCommand) ConnectionID() kernel.UUID { return c.connectionID }
