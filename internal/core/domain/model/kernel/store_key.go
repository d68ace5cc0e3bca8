package kernel

import (
	"fmt"
	"strings"
	"unicode"

	"logistica/internal/pkg/errs"
)

// StoreKeyMaxLength bounds the tenant identifier.
const StoreKeyMaxLength = 64

// StoreKey identifies a tenant (a store). Every order, history record,
// presence entry and broadcast group is scoped by it.
type StoreKey string

// NewStoreKey trims s and rejects empty keys, over-long keys and keys that
// contain whitespace or control characters.
func NewStoreKey(s string) (StoreKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("store_key")
	}
	if len(s) > StoreKeyMaxLength {
		return "", errs.NewValueIsOutOfRangeError("store_key length", len(s), 1, StoreKeyMaxLength)
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", errs.NewValueIsInvalidErrorWithCause("store_key", fmt.Errorf("%q contains whitespace", s))
		}
	}
	return StoreKey(s), nil
}

// Validate rejects the zero value.
func (k StoreKey) Validate() error {
	if k == "" {
		return errs.NewValueIsRequiredError("store_key")
	}
	return nil
}

func (k StoreKey) String() string {
	return string(k)
}
