package cmd

import (
	"log/slog"
	"time"

	"logistica/internal/adapters/in/ws"
	"logistica/internal/adapters/out/notifier"
	"logistica/internal/adapters/out/postgres"
	"logistica/internal/adapters/out/presence"
	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/application/usecases/queries"
	"logistica/internal/core/ports"
	"logistica/internal/jobs"
	"logistica/internal/pkg/keylock"

	"gorm.io/gorm"
)

// CompositionRoot owns the process-wide singletons: the connection pool,
// the per-order locks, the notifier hub and the presence table.
type CompositionRoot struct {
	configs Config
	logger  *slog.Logger

	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	locks    *keylock.Set
	hub      *notifier.Hub
	notifier ports.Notifier
	registry *presence.Registry
	clock    commands.Clock
}

// NewCompositionRoot wires the root. eventNotifier decorates hub when an
// event relay is configured; pass nil to publish through the hub directly.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	hub *notifier.Hub,
	eventNotifier ports.Notifier,
	logger *slog.Logger,
) CompositionRoot {
	if eventNotifier == nil {
		eventNotifier = hub
	}
	return CompositionRoot{
		configs:    configs,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      keylock.New(),
		hub:        hub,
		notifier:   eventNotifier,
		registry:   presence.NewRegistry(),
		clock:      time.Now,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.registry, c.notifier, c.locks)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.notifier, c.locks, c.clock)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f, c.notifier, c.locks)
}

func (c *CompositionRoot) CreateDeleteHistoryCommandHandler() commands.DeleteHistoryCommandHandler {
	var f commands.HistoryUoWFactory = FuncHistoryUoWFactory(func() commands.HistoryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteHistoryCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateCourierJoinCommandHandler() commands.CourierJoinCommandHandler {
	return commands.NewCourierJoinCommandHandler(c.registry, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCourierLocationCommandHandler() commands.CourierLocationCommandHandler {
	return commands.NewCourierLocationCommandHandler(c.registry, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCourierDisconnectCommandHandler() commands.CourierDisconnectCommandHandler {
	return commands.NewCourierDisconnectCommandHandler(c.registry, c.notifier)
}

func (c *CompositionRoot) CreateSweepStaleCouriersCommandHandler() commands.SweepStaleCouriersCommandHandler {
	return commands.NewSweepStaleCouriersCommandHandler(c.registry, c.notifier)
}

func (c *CompositionRoot) CreateVerifyDeliveryCodeQueryHandler() queries.VerifyDeliveryCodeQueryHandler {
	return queries.NewVerifyDeliveryCodeQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.gormDB, c.registry, c.configs.HistoryLimit)
}

func (c *CompositionRoot) CreateGateway() *ws.Gateway {
	join := c.CreateCourierJoinCommandHandler()
	locate := c.CreateCourierLocationCommandHandler()
	disconnect := c.CreateCourierDisconnectCommandHandler()
	return ws.NewGateway(c.hub, c.notifier, &join, &locate, &disconnect, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := c.CreateSweepStaleCouriersCommandHandler()
	return jobs.NewJobManager(jobs.NewPresenceSweepJob(
		&sweep,
		c.configs.PresenceSweepSchedule,
		c.configs.PresenceTTL,
		c.clock,
		c.logger,
	))
}

// Notifier is the notifier every handler publishes through.
func (c *CompositionRoot) Notifier() ports.Notifier {
	return c.notifier
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncHistoryUoWFactory func() commands.HistoryUoW

func (f FuncHistoryUoWFactory) Create() commands.HistoryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
