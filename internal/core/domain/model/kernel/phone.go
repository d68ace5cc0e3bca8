package kernel

import (
	"fmt"
	"strings"

	"logistica/internal/pkg/errs"
)

// Phone is a courier's phone number, the natural key of the presence
// registry. Formatting characters are stripped so that "+55 (11) 999" and
// "+5511999" name the same courier.
type Phone string

// NewPhone keeps digits and a leading '+', and requires at least one digit.
func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewValueIsRequiredError("phone")
	}

	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}

	normalized := b.String()
	if strings.TrimPrefix(normalized, "+") == "" {
		return "", errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("%q has no digits", s))
	}
	return Phone(normalized), nil
}

// Validate rejects the zero value.
func (p Phone) Validate() error {
	if p == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	return nil
}

func (p Phone) String() string {
	return string(p)
}
