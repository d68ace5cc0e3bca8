package order

import (
	"fmt"
	"strings"

	"logistica/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	idPrefix    = "PED-"
	idRandLen   = 8
	idMaxLength = 64
)

// ID is the short human-readable order identifier, e.g. "PED-3F9A01C7".
// Thirty-two random bits keep collisions negligible within a store's set of
// live orders.
type ID string

// NewID draws a fresh identifier.
func NewID() ID {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ID(idPrefix + strings.ToUpper(raw[:idRandLen]))
}

// IDFromString validates an identifier received from a caller.
func IDFromString(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("order_id")
	}
	if len(s) > idMaxLength {
		return "", errs.NewValueIsInvalidErrorWithCause("order_id", fmt.Errorf("longer than %d characters", idMaxLength))
	}
	return ID(s), nil
}

// Validate rejects the zero value.
func (id ID) Validate() error {
	if id == "" {
		return errs.NewValueIsRequiredError("order_id")
	}
	return nil
}

func (id ID) String() string {
	return string(id)
}
