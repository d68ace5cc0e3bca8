package history

import (
	"errors"
	"time"

	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/errs"
)

// ErrRecordIsNotConstructed is returned when a Record was not built by one
// of its constructors.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecordFromOrder constructor")

// Record denormalizes a completed order. Courier fields are empty when a
// pending order was closed without an assignment. Signature is an opaque
// proof-of-delivery blob and is the empty string, never absent, when the
// courier did not collect one.
type Record struct {
	id           order.ID
	storeKey     kernel.StoreKey
	clientName   string
	address      string
	phone        string
	price        float64
	courierName  string
	courierPhone string
	completedAt  time.Time
	signature    string

	isConstructed bool
}

// NewRecordFromOrder captures o, which must already be Completed.
func NewRecordFromOrder(o *order.Order, signature string, completedAt time.Time) (*Record, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Completed {
		return nil, errs.NewInvalidTransitionError("record history", o.Status().String())
	}
	if completedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("completed_at")
	}

	d := o.Details()
	r := &Record{
		id:            o.ID(),
		storeKey:      o.StoreKey(),
		clientName:    d.ClientName,
		address:       d.Address,
		phone:         d.Phone,
		price:         d.Price,
		completedAt:   completedAt,
		signature:     signature,
		isConstructed: true,
	}
	if c := o.Courier(); c != nil {
		r.courierName = c.Name()
		r.courierPhone = c.Phone().String()
	}
	return r, nil
}

// Snapshot is the persisted shape of a Record.
type Snapshot struct {
	ID           order.ID
	StoreKey     kernel.StoreKey
	ClientName   string
	Address      string
	Phone        string
	Price        float64
	CourierName  string
	CourierPhone string
	CompletedAt  time.Time
	Signature    string
}

// RestoreRecord rebuilds a record read from persistence.
func RestoreRecord(s Snapshot) (*Record, error) {
	var completedErr error
	if s.CompletedAt.IsZero() {
		completedErr = errs.NewValueIsRequiredError("completed_at")
	}
	if err := errors.Join(s.ID.Validate(), s.StoreKey.Validate(), completedErr); err != nil {
		return nil, err
	}

	return &Record{
		id:            s.ID,
		storeKey:      s.StoreKey,
		clientName:    s.ClientName,
		address:       s.Address,
		phone:         s.Phone,
		price:         s.Price,
		courierName:   s.CourierName,
		courierPhone:  s.CourierPhone,
		completedAt:   s.CompletedAt,
		signature:     s.Signature,
		isConstructed: true,
	}, nil
}

// Snapshot exports every field.
func (r *Record) Snapshot() Snapshot {
	return Snapshot{
		ID:           r.id,
		StoreKey:     r.storeKey,
		ClientName:   r.clientName,
		Address:      r.address,
		Phone:        r.phone,
		Price:        r.price,
		CourierName:  r.courierName,
		CourierPhone: r.courierPhone,
		CompletedAt:  r.completedAt,
		Signature:    r.signature,
	}
}

// Validate reports whether the record was built by a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() order.ID { return r.id }
func (r *Record) StoreKey() kernel.StoreKey { return r.storeKey }
func (r *Record) ClientName() string { return r.clientName }
func (r *Record) Address() string { return r.address }
func (r *Record) Phone() string { return r.phone }
func (r *Record) Price() float64 { return r.price }
func (r *Record) CourierName() string { return r.courierName }
func (r *Record) CourierPhone() string { return r.courierPhone }
func (r *Record) CompletedAt() time.Time { return r.completedAt }
func (r *Record) Signature() string { return r.signature }
