package commands

import (
	"errors"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand hands a pending order of storeKey to a courier.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  order.ID
	storeKey kernel.StoreKey
	courier  order.Courier

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand validates the order ID, the store key and the
// courier's name and phone.
func NewAssignOrderCommand(orderID, storeKey, courierName, courierPhone string) (AssignOrderCommand, error) {
	id, idErr := order.IDFromString(orderID)
	key, keyErr := kernel.NewStoreKey(storeKey)
	courier, courierErr := order.NewCourier(courierName, courierPhone)
	if err := errors.Join(idErr, keyErr, courierErr); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:  id,
		storeKey: key,
		courier:  courier,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c AssignOrderCommand) StoreKey() kernel.StoreKey {
	return c.storeKey
}

func (c AssignOrderCommand) Courier() order.Courier {
	return c.courier
}
