package historyrepo_test

import (
	"context"
	"testing"
	"time"

	"logistica/internal/adapters/out/postgres/historyrepo"
	"logistica/internal/adapters/out/postgres/pgtest"
	"logistica/internal/core/domain/model/history"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(string, any) {}

type HistoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *historyrepo.GormHistoryRepository
}

func (suite *HistoryRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repository = historyrepo.NewGormHistoryRepository(pg.DB, noopTracker{})
}

func (suite *HistoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *HistoryRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *HistoryRepositoryIntegrationTestSuite) newRecord(
	id order.ID, storeKey kernel.StoreKey, completedAt time.Time, signature string,
) *history.Record {
	r, err := history.RestoreRecord(history.Snapshot{
		ID:          id,
		StoreKey:    storeKey,
		ClientName:  "Ana",
		Price:       30,
		CompletedAt: completedAt,
		Signature:   signature,
	})
	suite.Require().NoError(err)
	return r
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestAdd_EmptySignatureStoredAsEmptyString() {
	ctx := context.Background()
	r := suite.newRecord("PED-00000001", "s1", time.Now().UTC(), "")

	suite.Require().NoError(suite.repository.Add(ctx, r))

	var signature *string
	suite.Require().NoError(suite.pg.DB.Raw(
		"SELECT signature FROM delivery_history WHERE id = ?", "PED-00000001",
	).Scan(&signature).Error)
	suite.Require().NotNil(signature)
	suite.Empty(*signature)

	got, err := suite.repository.Get(ctx, "PED-00000001")
	suite.Require().NoError(err)
	suite.Empty(got.Signature())
	suite.Empty(got.CourierName())
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestAdd_SameIDTwice_Fails() {
	ctx := context.Background()
	r := suite.newRecord("PED-00000002", "s1", time.Now().UTC(), "sig")
	suite.Require().NoError(suite.repository.Add(ctx, r))

	suite.Require().ErrorIs(suite.repository.Add(ctx, r), errs.ErrDurableStoreFailed)
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	r := suite.newRecord("PED-00000003", "s1", time.Now().UTC(), "")
	suite.Require().NoError(suite.repository.Add(ctx, r))

	suite.Require().NoError(suite.repository.Delete(ctx, r.ID()))
	suite.Require().ErrorIs(suite.repository.Delete(ctx, r.ID()), errs.ErrObjectNotFound)
}

func TestHistoryRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(HistoryRepositoryIntegrationTestSuite))
}
