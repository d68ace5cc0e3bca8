// Package errs provides the error taxonomy of the dispatch service.
// Every error reported to a caller belongs to exactly one family, which the
// gateway maps onto a response code:
//
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - not found: ObjectNotFoundError
//   - invalid transition: InvalidTransitionError
//   - durable store: DurableStoreError (retryable)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
