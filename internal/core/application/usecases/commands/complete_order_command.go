package commands

import (
	"errors"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand closes a live order of storeKey. Signature is an
// opaque proof-of-delivery blob and may be empty.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   order.ID
	storeKey  kernel.StoreKey
	signature string

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID, storeKey, signature string) (CompleteOrderCommand, error) {
	id, idErr := order.IDFromString(orderID)
	key, keyErr := kernel.NewStoreKey(storeKey)
	if err := errors.Join(idErr, keyErr); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		orderID:   id,
		storeKey:  key,
		signature: signature,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() order.ID {
	return c.orderID
}

func (c CompleteOrderCommand) StoreKey() kernel.StoreKey {
	return c.storeKey
}

func (c CompleteOrderCommand) Signature() string {
	return c.signature
}
