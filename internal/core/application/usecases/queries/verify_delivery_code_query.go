// Package queries contains read operations over the Order Store and the
// presence table. Handlers read with plain SQL and return read models shaped
// for the gateway.
package queries

import (
	"errors"
	"strings"

	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/guard"
)

var ErrVerifyDeliveryCodeQueryIsNotConstructed = errors.New(
	"VerifyDeliveryCodeQuery must be created via NewVerifyDeliveryCodeQuery constructor",
)

// VerifyDeliveryCodeQuery checks the code a client reads out to the courier
// at the door.
type VerifyDeliveryCodeQuery struct {
	orderID order.ID
	code    string

	guard guard.ConstructorGuard
}

func NewVerifyDeliveryCodeQuery(orderID, code string) (VerifyDeliveryCodeQuery, error) {
	id, err := order.IDFromString(orderID)
	if err != nil {
		return VerifyDeliveryCodeQuery{}, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return VerifyDeliveryCodeQuery{}, errs.NewValueIsRequiredError("code")
	}

	return VerifyDeliveryCodeQuery{
		orderID: id,
		code:    code,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q VerifyDeliveryCodeQuery) Validate() error {
	return q.guard.Validate(ErrVerifyDeliveryCodeQueryIsNotConstructed)
}

func (q VerifyDeliveryCodeQuery) OrderID() order.ID { return q.orderID }
func (q VerifyDeliveryCodeQuery) Code() string { return q.code }
