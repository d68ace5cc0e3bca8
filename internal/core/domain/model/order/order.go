package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not built by
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Details are the client-supplied fields of an order. They are immutable
// once the order exists.
type Details struct {
	ClientName  string
	Address     string
	Phone       string
	Price       float64
	Destination kernel.Location
}

// Order is a live delivery order of one store.
//
// Order follows these invariants:
//   - ID, store key, details, delivery code and creation time never change
//   - Status transitions follow the Status state machine
//   - A Pending order has no courier, an OnRoute order has exactly one
type Order struct {
	id           ID
	storeKey     kernel.StoreKey
	details      Details
	deliveryCode DeliveryCode
	createdAt    time.Time

	status  Status
	courier *Courier

	isConstructed bool
}

// NewOrder creates a Pending order with no courier. All fields are
// validated and every failure is reported at once.
//
// Example:
//
//	dest, _ := kernel.NewLocation(-23.55, -46.63)
//	code, _ := order.NewRandomDeliveryCode()
//	o, err := order.NewOrder(order.NewID(), "pizzaria-centro", order.Details{
//	    ClientName:  "Ana",
//	    Address:     "Rua Augusta, 100",
//	    Phone:       "11 98888-7777",
//	    Price:       42.5,
//	    Destination: dest,
//	}, code, time.Now())
func NewOrder(
	id ID,
	storeKey kernel.StoreKey,
	details Details,
	code DeliveryCode,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStoreKey(storeKey),
		o.setDetails(details),
		o.setDeliveryCode(code),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from persistence, checking the same
// invariants as NewOrder plus the status/courier consistency.
func RestoreOrder(
	id ID,
	storeKey kernel.StoreKey,
	details Details,
	code DeliveryCode,
	createdAt time.Time,
	status Status,
	courier *Courier,
) (*Order, error) {
	o, err := NewOrder(id, storeKey, details, code, createdAt)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), status.ValidateCanHaveCourier(courier != nil)); err != nil {
		return nil, err
	}

	o.status = status
	if courier != nil {
		c := *courier
		o.courier = &c
	}
	return o, nil
}

// Validate reports whether the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order identifier.
func (o *Order) ID() ID {
	return o.id
}

// StoreKey returns the tenant that owns the order.
func (o *Order) StoreKey() kernel.StoreKey {
	return o.storeKey
}

// BelongsTo reports whether the order is owned by storeKey.
func (o *Order) BelongsTo(storeKey kernel.StoreKey) bool {
	return o.storeKey == storeKey
}

// Details returns the client-supplied fields.
func (o *Order) Details() Details {
	return o.details
}

// DeliveryCode returns the completion secret.
func (o *Order) DeliveryCode() DeliveryCode {
	return o.deliveryCode
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns a copy of the assignment, or nil while Pending.
func (o *Order) Courier() *Courier {
	if o.courier == nil {
		return nil
	}
	c := *o.courier
	return &c
}

// VerifyCode compares candidate against the delivery code without changing
// the order.
func (o *Order) VerifyCode(candidate string) bool {
	return o.deliveryCode.Matches(candidate)
}

// ValidateAssign reports whether Assign would succeed.
func (o *Order) ValidateAssign() error {
	return o.status.ValidateAssign()
}

// Assign writes the courier and moves the order OnRoute. Legal only from
// Pending; a second assignment fails with an InvalidTransitionError and
// leaves the first courier in place.
func (o *Order) Assign(courier Courier) error {
	if courier.name == "" || courier.phone == "" {
		return errs.NewValueIsRequiredError("courier")
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courier = &courier
	return nil
}

// Complete moves the order to its terminal status. Legal from OnRoute and,
// as a cancellation, from Pending.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStoreKey(storeKey kernel.StoreKey) error {
	if err := storeKey.Validate(); err != nil {
		return err
	}
	o.storeKey = storeKey
	return nil
}

func (o *Order) setDetails(d Details) error {
	d.ClientName = strings.TrimSpace(d.ClientName)
	d.Address = strings.TrimSpace(d.Address)
	d.Phone = strings.TrimSpace(d.Phone)

	var errList []error
	if d.ClientName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("client_name"))
	}
	if d.Address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address"))
	}
	if d.Phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if d.Price < 0 || math.IsNaN(d.Price) || math.IsInf(d.Price, 0) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not a valid price", d.Price)))
	}
	if err := d.Destination.Validate(); err != nil {
		errList = append(errList, err)
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}
	o.details = d
	return nil
}

func (o *Order) setDeliveryCode(code DeliveryCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.deliveryCode = code
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	o.createdAt = createdAt
	return nil
}
