// Package ws is the persistent-link half of the session gateway: dashboards
// and courier apps hold a websocket, join a store group and receive that
// store's events.
package ws

import (
	"context"
	"log/slog"
	"net/http"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/presence"
	"logistica/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Subscriptions is the connection registry of the notifier hub.
type Subscriptions interface {
	Register(connectionID kernel.UUID) (<-chan ports.Event, error)
	Unregister(connectionID kernel.UUID)
	Subscribe(connectionID kernel.UUID, storeKey kernel.StoreKey) error
	StoreOf(connectionID kernel.UUID) (kernel.StoreKey, bool)
}

type CourierJoinHandler interface {
	Handle(ctx context.Context, cmd commands.CourierJoinCommand) (presence.Entry, error)
}

type CourierLocationHandler interface {
	Handle(ctx context.Context, cmd commands.CourierLocationCommand) (presence.Entry, error)
}

type CourierDisconnectHandler interface {
	Handle(ctx context.Context, cmd commands.CourierDisconnectCommand) (bool, error)
}

// Gateway upgrades HTTP requests and runs one session per connection.
type Gateway struct {
	subscriptions Subscriptions
	notifier      ports.Notifier

	courierJoin       CourierJoinHandler
	courierLocation   CourierLocationHandler
	courierDisconnect CourierDisconnectHandler

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewGateway(
	subscriptions Subscriptions,
	notifier ports.Notifier,
	courierJoin CourierJoinHandler,
	courierLocation CourierLocationHandler,
	courierDisconnect CourierDisconnectHandler,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		subscriptions:     subscriptions,
		notifier:          notifier,
		courierJoin:       courierJoin,
		courierLocation:   courierLocation,
		courierDisconnect: courierDisconnect,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboards are served from other origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_gateway"),
	}
}

// Handle is the echo handler of GET /ws. It returns once the connection is
// closed.
func (g *Gateway) Handle(c echo.Context) error {
	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		g.logger.Warn("Websocket upgrade failed", "error", err)
		return nil
	}

	s, err := g.open(conn)
	if err != nil {
		g.logger.Error("Failed to register connection", "error", err)
		_ = conn.Close()
		return nil
	}

	s.run(c.Request().Context())
	return nil
}

func (g *Gateway) open(conn *websocket.Conn) (*session, error) {
	id := kernel.NewUUID()
	events, err := g.subscriptions.Register(id)
	if err != nil {
		return nil, err
	}

	return &session{
		id:      id,
		conn:    conn,
		events:  events,
		gateway: g,
		logger:  g.logger.With("connection_id", id.String()),
	}, nil
}

// close runs once per session after both pumps stopped.
func (g *Gateway) close(ctx context.Context, id kernel.UUID) {
	cmd, err := commands.NewCourierDisconnectCommand(id)
	if err == nil {
		if _, err = g.courierDisconnect.Handle(ctx, cmd); err != nil {
			g.logger.Warn("Failed to drop courier presence", "connection_id", id.String(), "error", err)
		}
	}
	g.subscriptions.Unregister(id)
}
