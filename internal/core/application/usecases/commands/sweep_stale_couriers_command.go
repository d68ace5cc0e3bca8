package commands

import (
	"errors"
	"time"

	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/guard"
)

var ErrSweepStaleCouriersCommandIsNotConstructed = errors.New(
	"SweepStaleCouriersCommand must be created via NewSweepStaleCouriersCommand constructor",
)

// DefaultPresenceTTL is how long a courier may stay silent before eviction.
const DefaultPresenceTTL = 10 * time.Minute

// SweepStaleCouriersCommand evicts couriers not seen for longer than
// threshold at now.
type SweepStaleCouriersCommand struct { //nolint:recvcheck //using for validation
	now       time.Time
	threshold time.Duration

	guard guard.ConstructorGuard
}

func NewSweepStaleCouriersCommand(now time.Time, threshold time.Duration) (SweepStaleCouriersCommand, error) {
	var nowErr, thresholdErr error
	if now.IsZero() {
		nowErr = errs.NewValueIsRequiredError("now")
	}
	if threshold <= 0 {
		thresholdErr = errs.NewValueIsOutOfRangeError("threshold", threshold, "1ns", "unbounded")
	}
	if err := errors.Join(nowErr, thresholdErr); err != nil {
		return SweepStaleCouriersCommand{}, err
	}

	return SweepStaleCouriersCommand{
		now:       now,
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepStaleCouriersCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleCouriersCommandIsNotConstructed)
}

func (c SweepStaleCouriersCommand) Now() time.Time {
	return c.now
}

func (c SweepStaleCouriersCommand) Threshold() time.Duration {
	return c.threshold
}
