package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"logistica/cmd"
	httpadapter "logistica/internal/adapters/in/http"
	"logistica/internal/adapters/out/notifier"
	"logistica/internal/adapters/out/postgres"
	"logistica/internal/adapters/out/rabbitmq"
	"logistica/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := cmd.LoadConfig()
	appLogger := newLogger(configs.LogLevel)

	if err := run(configs, appLogger); err != nil {
		appLogger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(configs cmd.Config, appLogger *slog.Logger) error {
	if err := postgres.Migrate(configs.DSN()); err != nil {
		return err
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	hub := notifier.NewHub(notifier.DefaultQueueSize, appLogger)

	var eventNotifier ports.Notifier = hub
	if configs.AMQPURL != "" {
		client, dialErr := rabbitmq.Dial(configs.AMQPURL)
		if dialErr != nil {
			return dialErr
		}
		defer client.Close()

		relay, relayErr := rabbitmq.NewRelay(hub, client.Channel(), configs.AMQPExchange, appLogger)
		if relayErr != nil {
			return fmt.Errorf("declare event exchange: %w", relayErr)
		}
		eventNotifier = relay
	}

	app := cmd.NewCompositionRoot(configs, gormDB, hub, eventNotifier, appLogger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := newWebServer(&app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down")
	app.Notifier().PublishGlobal(ports.EventServerRestarting, nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newWebServer(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.BodyLimit("50M"))
	e.Use(httpadapter.MetricsMiddleware())

	createOrder := app.CreateCreateOrderCommandHandler()
	assignOrder := app.CreateAssignOrderCommandHandler()
	completeOrder := app.CreateCompleteOrderCommandHandler()
	deleteOrder := app.CreateDeleteOrderCommandHandler()
	deleteHistory := app.CreateDeleteHistoryCommandHandler()
	verifyCode := app.CreateVerifyDeliveryCodeQueryHandler()
	dashboard := app.CreateGetDashboardQueryHandler()

	httpadapter.NewServer(
		&createOrder,
		&assignOrder,
		&completeOrder,
		&deleteOrder,
		&deleteHistory,
		verifyCode,
		dashboard,
	).Register(e)

	e.GET("/ws", app.CreateGateway().Handle)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
