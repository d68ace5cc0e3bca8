// Package postgres implements the Order Store on PostgreSQL through GORM:
// a Unit of Work spanning the orders and delivery_history tables, plus the
// embedded schema migrations.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.HistoryRepository().Add(ctx, record); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Delete(ctx, record.ID()); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction and must not be
// shared between goroutines.
package postgres

import (
	"context"

	"logistica/internal/adapters/out/postgres/historyrepo"
	"logistica/internal/adapters/out/postgres/orderrepo"
	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/metrics"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates its repositories wrote.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. A second call while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewDurableStoreError("begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit makes every write of the transaction visible and counts the
// aggregates it carried.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return errs.NewDurableStoreError("commit", gorm.ErrInvalidTransaction)
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	tracked := uow.trackedAggregates
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return errs.NewDurableStoreError("commit", err)
	}

	for _, t := range tracked {
		metrics.AggregatesCommittedTotal.WithLabelValues(aggregateKind(t.Aggregate)).Inc()
	}
	return nil
}

// Rollback discards the open transaction. Without one it does nothing, so
// a deferred Rollback after a successful Commit is harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if err != nil {
		return errs.NewDurableStoreError("rollback", err)
	}
	return nil
}

// OrderRepository returns a repository bound to the open transaction, or
// to the pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// HistoryRepository returns a repository bound to the open transaction, or
// to the pool when none is open.
func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(uow.conn(), uow)
}

// TrackAggregate is called by the repositories after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func aggregateKind(aggregate any) string {
	switch aggregate.(type) {
	case *order.Order:
		return "order"
	case *history.Record:
		return "history"
	default:
		return "other"
	}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
