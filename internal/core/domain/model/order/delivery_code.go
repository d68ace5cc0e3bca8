package order

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"logistica/internal/pkg/errs"
)

const (
	// DeliveryCodeMin is the smallest generated code.
	DeliveryCodeMin = 1000
	// DeliveryCodeMax is the largest generated code.
	DeliveryCodeMax = 9999
)

// DeliveryCode is the 4-digit secret that proves physical hand-off. String
// masks it so it cannot leak through logs; Reveal returns the digits.
type DeliveryCode struct {
	digits string
}

// NewRandomDeliveryCode draws a code uniformly from
// [DeliveryCodeMin..DeliveryCodeMax] using crypto/rand.
func NewRandomDeliveryCode() (DeliveryCode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(DeliveryCodeMax-DeliveryCodeMin+1))
	if err != nil {
		return DeliveryCode{}, fmt.Errorf("draw delivery code: %w", err)
	}
	return DeliveryCode{digits: strconv.FormatInt(n.Int64()+DeliveryCodeMin, 10)}, nil
}

// DeliveryCodeFromString restores a persisted code.
func DeliveryCodeFromString(s string) (DeliveryCode, error) {
	if s == "" {
		return DeliveryCode{}, errs.NewValueIsRequiredError("delivery_code")
	}
	n, err := strconv.Atoi(s)
	if err != nil || len(s) != 4 {
		return DeliveryCode{}, errs.NewValueIsInvalidErrorWithCause("delivery_code", errors.New("must be 4 digits"))
	}
	if n < DeliveryCodeMin || n > DeliveryCodeMax {
		return DeliveryCode{}, errs.NewValueIsOutOfRangeError("delivery_code", n, DeliveryCodeMin, DeliveryCodeMax)
	}
	return DeliveryCode{digits: s}, nil
}

// Validate rejects the zero value.
func (c DeliveryCode) Validate() error {
	if c.digits == "" {
		return errs.NewValueIsRequiredError("delivery_code")
	}
	return nil
}

// Matches compares candidate in constant time. A zero code matches nothing.
func (c DeliveryCode) Matches(candidate string) bool {
	if c.digits == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.digits), []byte(candidate)) == 1
}

// Reveal returns the digits. Only the creation response and persistence
// may call it.
func (c DeliveryCode) Reveal() string {
	return c.digits
}

func (c DeliveryCode) String() string {
	return "****"
}
