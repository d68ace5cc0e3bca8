package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/ports"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// session is one live connection. The read pump handles inbound envelopes;
// the write pump is the only writer to conn.
type session struct {
	id      kernel.UUID
	conn    *websocket.Conn
	events  <-chan ports.Event
	gateway *Gateway
	logger  *slog.Logger

	// Last driver identity seen on this link, used as the fallback of a
	// location report that arrives before driver_join.
	mu    sync.Mutex
	phone string
	name  string
}

func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writePump(ctx)
	}()

	s.readPump(ctx)
	cancel()
	<-done

	// The request context is gone by now.
	s.gateway.close(context.Background(), s.id)
	_ = s.conn.Close()
}

func (s *session) readPump(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("Connection closed unexpectedly", "error", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		var env Envelope
		if err = json.Unmarshal(frame, &env); err != nil {
			s.logger.Info("Ignoring malformed frame", "error", err)
			continue
		}

		if err := s.dispatch(ctx, env); err != nil {
			s.logger.Info("Rejected inbound event", "event", env.Event, "error", err)
		}
	}
}

// writePump drains the hub queue until it is closed or the session ends.
func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			return
		case event, ok := <-s.events:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(event); err != nil {
				s.logger.Warn("Failed to write event", "event", event.Name, "error", err)
				_ = s.conn.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = s.conn.Close()
				return
			}
		}
	}
}

var errUnknownEvent = errors.New("unknown event")

func (s *session) dispatch(ctx context.Context, env Envelope) error {
	switch env.Event {
	case eventJoinStore:
		return s.joinStore(env.Data)
	case eventDriverJoin:
		return s.driverJoin(ctx, env.Data)
	case eventDriverLocation:
		return s.driverLocation(ctx, env.Data)
	case eventSendChatMessage:
		return s.chat(env.Data)
	default:
		return errUnknownEvent
	}
}

func (s *session) joinStore(raw json.RawMessage) error {
	key, err := decodeStoreKey(raw)
	if err != nil {
		return err
	}
	storeKey, err := kernel.NewStoreKey(key)
	if err != nil {
		return err
	}
	return s.gateway.subscriptions.Subscribe(s.id, storeKey)
}

func (s *session) driverJoin(ctx context.Context, raw json.RawMessage) error {
	var p driverJoinPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}

	cmd, err := commands.NewCourierJoinCommand(p.StoreKey, p.Phone, p.Name, s.id)
	if err != nil {
		return err
	}
	if err = s.gateway.subscriptions.Subscribe(s.id, cmd.StoreKey()); err != nil {
		return err
	}
	if _, err = s.gateway.courierJoin.Handle(ctx, cmd); err != nil {
		return err
	}

	s.mu.Lock()
	s.phone, s.name = p.Phone, p.Name
	s.mu.Unlock()
	return nil
}

func (s *session) driverLocation(ctx context.Context, raw json.RawMessage) error {
	var p driverLocationPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}

	s.mu.Lock()
	if p.Phone == "" {
		p.Phone = s.phone
	}
	if p.Name == "" {
		p.Name = s.name
	}
	s.mu.Unlock()

	fallbackStore := p.StoreKey
	if current, ok := s.gateway.subscriptions.StoreOf(s.id); ok {
		fallbackStore = current.String()
	}

	cmd, err := commands.NewCourierLocationCommand(p.Phone, p.Lat, p.Lng, fallbackStore, p.Name, s.id)
	if err != nil {
		return err
	}
	_, err = s.gateway.courierLocation.Handle(ctx, cmd)
	return err
}

func (s *session) chat(raw json.RawMessage) error {
	storeKey, ok := s.gateway.subscriptions.StoreOf(s.id)
	if !ok {
		return errors.New("chat before join_store")
	}

	p, err := decodeChatPayload(raw)
	if err != nil {
		return err
	}
	s.gateway.notifier.Publish(storeKey, ports.EventNewChatMessage, p)
	return nil
}
