package order

import (
	"errors"
	"strings"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/pkg/errs"
)

// Courier is the assignment written onto an order: who carries it and how
// to reach them.
type Courier struct {
	name  string
	phone kernel.Phone
}

// NewCourier requires a non-empty name and a valid phone.
func NewCourier(name, phone string) (Courier, error) {
	name = strings.TrimSpace(name)

	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("courier_name")
	}
	p, phoneErr := kernel.NewPhone(phone)

	if err := errors.Join(nameErr, phoneErr); err != nil {
		return Courier{}, err
	}
	return Courier{name: name, phone: p}, nil
}

// Name returns the courier's display name.
func (c Courier) Name() string {
	return c.name
}

// Phone returns the courier's normalized phone.
func (c Courier) Phone() kernel.Phone {
	return c.phone
}
