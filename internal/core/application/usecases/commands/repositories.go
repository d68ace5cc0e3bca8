// Package commands contains the operations that modify dispatch state.
// Every command is a constructor-validated value handled by a handler with
// a single Handle method. Handlers that touch the Order Store run inside a
// unit of work and notify only after the commit succeeds.
package commands

import (
	"context"
	"time"

	"logistica/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides access to the history repository within a transaction.
	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	// OrderUoW manages transactions for operations on live orders only.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// HistoryUoW manages transactions for operations on history records only.
	HistoryUoW interface {
		TxManager
		HistoryRepoFactory
	}

	// HistoryUoWFactory creates new history unit of work instances.
	HistoryUoWFactory interface {
		Create() HistoryUoW
	}

	// UoW spans live orders and history. Completion needs it: the history
	// insert and the order delete commit together or not at all.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   _ = uow.HistoryRepository().Add(ctx, record)
	//   _ = uow.OrderRepository().Delete(ctx, orderID)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-table operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time. Handlers take it as a dependency so tests
// can pin timestamps.
type Clock func() time.Time
