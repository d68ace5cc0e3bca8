package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "logistica/internal/adapters/out/postgres"
	"logistica/internal/adapters/out/postgres/pgtest"
	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/errs"
	"logistica/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory *postgresadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	dest, err := kernel.NewLocation(1, 2)
	suite.Require().NoError(err)
	code, err := order.DeliveryCodeFromString("1234")
	suite.Require().NoError(err)
	o, err := order.NewOrder(order.NewID(), "s1", order.Details{
		ClientName:  "Ana",
		Address:     "Rua A",
		Phone:       "1199",
		Price:       10,
		Destination: dest,
	}, code, time.Now().UTC())
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) countRows(table string) int64 {
	var n int64
	suite.Require().NoError(suite.pg.DB.Table(table).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesWritesVisibleAndCountsAggregates() {
	ctx := context.Background()
	committed := metrics.AggregatesCommittedTotal.WithLabelValues("order")
	before := testutil.ToFloat64(committed)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))
	suite.Equal(int64(0), suite.countRows("orders"))

	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(int64(1), suite.countRows("orders"))
	suite.InDelta(before+1, testutil.ToFloat64(committed), 1e-9)

	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder()))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.countRows("orders"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestArchive_IsAtomic() {
	ctx := context.Background()
	o := suite.newOrder()
	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, o))
	suite.Require().NoError(setup.Commit(ctx))

	suite.Require().NoError(o.Complete())
	record, err := history.NewRecordFromOrder(o, "", time.Now().UTC())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.HistoryRepository().Add(ctx, record))
	suite.Require().NoError(uow.OrderRepository().Delete(ctx, o.ID()))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(1), suite.countRows("orders"))
	suite.Equal(int64(0), suite.countRows("delivery_history"))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.HistoryRepository().Add(ctx, record))
	suite.Require().NoError(uow.OrderRepository().Delete(ctx, o.ID()))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(0), suite.countRows("orders"))
	suite.Equal(int64(1), suite.countRows("delivery_history"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	err := suite.factory.Create().Commit(context.Background())
	suite.Require().ErrorIs(err, errs.ErrDurableStoreFailed)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
