package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/presence"
	"logistica/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweepHandler struct {
	mock.Mock
}

func (m *MockSweepHandler) Handle(ctx context.Context, cmd commands.SweepStaleCouriersCommand) ([]presence.Entry, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]presence.Entry), args.Error(1)
}

var sweepNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newSweepJob(handler *MockSweepHandler, schedule string, ttl time.Duration) *jobs.PresenceSweepJob {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return jobs.NewPresenceSweepJob(handler, schedule, ttl, func() time.Time { return sweepNow }, logger)
}

func TestPresenceSweepJob_RunOnce_PassesClockAndTTL(t *testing.T) {
	handler := new(MockSweepHandler)
	entry, err := presence.NewEntry("s1", "5511999", "Bruno", kernel.UUID{}, sweepNow.Add(-time.Hour))
	require.NoError(t, err)

	handler.
		On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SweepStaleCouriersCommand) bool {
			return cmd.Now().Equal(sweepNow) && cmd.Threshold() == 5*time.Minute
		})).
		Return([]presence.Entry{entry}, nil).
		Once()

	removed := newSweepJob(handler, "", 5*time.Minute).RunOnce(context.Background())

	assert.Equal(t, 1, removed)
	handler.AssertExpectations(t)
}

func TestPresenceSweepJob_RunOnce_DefaultsTTL(t *testing.T) {
	handler := new(MockSweepHandler)
	handler.
		On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SweepStaleCouriersCommand) bool {
			return cmd.Threshold() == commands.DefaultPresenceTTL
		})).
		Return([]presence.Entry{}, nil).
		Once()

	assert.Zero(t, newSweepJob(handler, "", 0).RunOnce(context.Background()))
	handler.AssertExpectations(t)
}

func TestPresenceSweepJob_RunOnce_HandlerErrorIsSwallowed(t *testing.T) {
	handler := new(MockSweepHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

	assert.Zero(t, newSweepJob(handler, "", time.Minute).RunOnce(context.Background()))
}

func TestPresenceSweepJob_Start_InvalidSchedule(t *testing.T) {
	job := newSweepJob(new(MockSweepHandler), "not a schedule", time.Minute)

	require.Error(t, jobs.NewJobManager(job).StartAll())
}

func TestJobManager_StartAndStop(t *testing.T) {
	handler := new(MockSweepHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return([]presence.Entry{}, nil).Maybe()

	manager := jobs.NewJobManager(newSweepJob(handler, "@every 1h", time.Minute))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
