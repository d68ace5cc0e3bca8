package commands

import (
	"errors"
	"strings"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/guard"
)

var ErrCourierLocationCommandIsNotConstructed = errors.New(
	"CourierLocationCommand must be created via NewCourierLocationCommand constructor",
)

// CourierLocationCommand reports a courier's position. The fallback is what
// the reporting connection knows about the courier; it is used only when the
// courier has no presence entry yet.
type CourierLocationCommand struct { //nolint:recvcheck //using for validation
	phone    kernel.Phone
	location kernel.Location
	fallback ports.PresenceFallback

	guard guard.ConstructorGuard
}

// NewCourierLocationCommand validates phone and coordinates. fallbackStore
// may be empty; it is validated only when present.
func NewCourierLocationCommand(
	phone string,
	lat, lng float64,
	fallbackStore, fallbackName string,
	connectionID kernel.UUID,
) (CourierLocationCommand, error) {
	p, phoneErr := kernel.NewPhone(phone)
	loc, locErr := kernel.NewLocation(lat, lng)

	var key kernel.StoreKey
	var keyErr error
	if strings.TrimSpace(fallbackStore) != "" {
		key, keyErr = kernel.NewStoreKey(fallbackStore)
	}

	if err := errors.Join(phoneErr, locErr, keyErr); err != nil {
		return CourierLocationCommand{}, err
	}

	return CourierLocationCommand{
		phone:    p,
		location: loc,
		fallback: ports.PresenceFallback{
			StoreKey:     key,
			Name:         fallbackName,
			ConnectionID: connectionID,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrCourierLocationCommandIsNotConstructed)
}

func (c CourierLocationCommand) Phone() kernel.Phone {
	return c.phone
}

func (c CourierLocationCommand) Location() kernel.Location {
	return c.location
}

func (c CourierLocationCommand) Fallback() ports.PresenceFallback {
	return c.fallback
}
