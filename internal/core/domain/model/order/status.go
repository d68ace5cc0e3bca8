package order

import (
	"fmt"

	"logistica/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> OnRoute ──> Completed
//	   │                       ▲
//	   └───────────────────────┘
//	        (cancellation)
//
// Completed is terminal. A completed order lives on only as a history
// record; the live order is deleted in the same transaction.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the order waits for a courier.
	Pending

	// OnRoute means a courier has been assigned and is delivering.
	OnRoute

	// Completed is the terminal status.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		OnRoute:   "on_route",
		Completed: "completed",
	}
}

// ParseStatus converts the persisted representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts Pending, OnRoute and Completed.
func (s Status) Validate() error {
	if s != Pending && s != OnRoute && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted and wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateAssign checks, without side effects, that an order in status s
// may be assigned.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewInvalidTransitionError("assign", s.String())
	}
	return nil
}

// ValidateComplete checks, without side effects, that an order in status s
// may be completed.
func (s Status) ValidateComplete() error {
	if s != Pending && s != OnRoute {
		return errs.NewInvalidTransitionError("complete", s.String())
	}
	return nil
}

// ValidateCanHaveCourier enforces the courier/status invariant:
// Pending has no courier, OnRoute has one, Completed may have either
// (a cancelled pending order completes without one).
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && s == OnRoute {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}

// Assign returns OnRoute, or an InvalidTransitionError unless s is Pending.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return Unknown, err
	}
	return OnRoute, nil
}

// Complete returns Completed, or an InvalidTransitionError unless s is
// Pending or OnRoute.
func (s Status) Complete() (Status, error) {
	if err := s.ValidateComplete(); err != nil {
		return Unknown, err
	}
	return Completed, nil
}
