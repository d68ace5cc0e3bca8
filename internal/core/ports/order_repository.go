// Package ports defines the contracts between the dispatch core and its
// adapters: the durable Order Store, the ephemeral presence table and the
// store-scoped notifier.
package ports

import (
	"context"

	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/order"
)

// OrderRepository persists live orders. Listing always filters by store
// key; point lookups use the order ID. Persistence failures are reported as
// errs.DurableStoreError.
type OrderRepository interface {
	// Add inserts a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateStatus writes status and courier fields in one statement, on
	// the condition that the stored status still equals expected.
	// Otherwise it returns errs.InvalidTransitionError and writes nothing.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id order.ID) (*order.Order, error)

	// Delete removes a live order. Returns errs.ObjectNotFoundError when no
	// row was removed.
	Delete(ctx context.Context, id order.ID) error
}

// HistoryRepository persists delivery history records.
type HistoryRepository interface {
	// Add inserts a record; a record for the same order ID may exist only once.
	Add(ctx context.Context, record *history.Record) error

	// Get returns errs.ObjectNotFoundError when the record does not exist.
	Get(ctx context.Context, id order.ID) (*history.Record, error)

	// Delete removes a record. Returns errs.ObjectNotFoundError when no row
	// was removed.
	Delete(ctx context.Context, id order.ID) error
}
