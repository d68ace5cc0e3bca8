package commands

import (
	"errors"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a store registering a new delivery.
// The constructor checks the store key and the destination; client fields
// are checked when the order aggregate is built.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("pizzaria-centro", "Ana", "Rua Augusta, 100",
//	    "11 98888-7777", 42.5, -23.55, -46.63)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created, code %s", res.OrderID, res.DeliveryCode)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	storeKey kernel.StoreKey
	details  order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every field and reports all failures at
// once.
func NewCreateOrderCommand(
	storeKey, clientName, address, phone string,
	price, lat, lng float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	key, keyErr := kernel.NewStoreKey(storeKey)
	dest, destErr := kernel.NewLocation(lat, lng)
	if err := errors.Join(keyErr, destErr); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.storeKey = key
	cmd.details = order.Details{
		ClientName:  clientName,
		Address:     address,
		Phone:       phone,
		Price:       price,
		Destination: dest,
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// StoreKey returns the store the order belongs to.
func (c CreateOrderCommand) StoreKey() kernel.StoreKey {
	return c.storeKey
}

// Details returns the client-supplied fields.
func (c CreateOrderCommand) Details() order.Details {
	return c.details
}
