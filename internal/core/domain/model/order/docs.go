// Package order provides the Order aggregate of the dispatch system and the
// state machine that governs it.
//
// The package includes:
//   - Order: the aggregate root, scoped to one store
//   - Status: the lifecycle state machine
//   - ID, DeliveryCode, Courier, Details: value objects of the aggregate
//
// Key business rules:
//   - An order starts Pending with no courier
//   - Assignment is legal only from Pending and moves the order OnRoute
//   - Completion is legal from OnRoute, or from Pending as a cancellation
//   - A Pending order never carries a courier; an OnRoute order always does
//   - The delivery code is never printed; it is only compared
package order
