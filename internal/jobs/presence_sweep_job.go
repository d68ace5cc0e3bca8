package jobs

import (
	"context"
	"log/slog"
	"time"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/domain/model/presence"

	"github.com/robfig/cron/v3"
)

// DefaultPresenceSweepSchedule runs the sweep once a minute.
const DefaultPresenceSweepSchedule = "@every 60s"

type SweepStaleCouriersHandler interface {
	Handle(ctx context.Context, cmd commands.SweepStaleCouriersCommand) ([]presence.Entry, error)
}

// PresenceSweepJob evicts couriers that stopped reporting without closing
// their connection.
type PresenceSweepJob struct {
	handler  SweepStaleCouriersHandler
	schedule string
	ttl      time.Duration
	now      commands.Clock
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPresenceSweepJob creates the job. An empty schedule selects
// DefaultPresenceSweepSchedule and a non-positive ttl selects
// commands.DefaultPresenceTTL.
func NewPresenceSweepJob(
	handler SweepStaleCouriersHandler,
	schedule string,
	ttl time.Duration,
	now commands.Clock,
	logger *slog.Logger,
) *PresenceSweepJob {
	if schedule == "" {
		schedule = DefaultPresenceSweepSchedule
	}
	if ttl <= 0 {
		ttl = commands.DefaultPresenceTTL
	}
	return &PresenceSweepJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		now:      now,
		cron:     cron.New(),
		logger:   logger.With("component", "presence_sweep_job"),
	}
}

// Start schedules the sweep. An invalid schedule is reported here.
func (j *PresenceSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence sweep job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// RunOnce performs a single sweep and returns how many couriers were evicted.
func (j *PresenceSweepJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewSweepStaleCouriersCommand(j.now(), j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence sweep job misconfigured", "error", err)
		return 0
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence sweep job failed", "error", err)
		return 0
	}

	if len(removed) > 0 {
		j.logger.InfoContext(ctx, "Evicted stale couriers", "count", len(removed))
	}
	return len(removed)
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *PresenceSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Presence sweep job stopped")
}
