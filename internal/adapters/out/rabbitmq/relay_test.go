package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"logistica/internal/adapters/out/rabbitmq"
	"logistica/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *MockChannel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(storeKey kernel.StoreKey, name string, payload any) {
	m.Called(storeKey, name, payload)
}

func (m *MockNotifier) PublishUnicast(connectionID kernel.UUID, name string, payload any) {
	m.Called(connectionID, name, payload)
}

func (m *MockNotifier) PublishGlobal(name string, payload any) {
	m.Called(name, payload)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRelay(t *testing.T, ch *MockChannel, next *MockNotifier) *rabbitmq.Relay {
	t.Helper()
	ch.On("ExchangeDeclare", "dispatch.events", "topic", true, false, false, false, amqp.Table(nil)).Return(nil).Once()
	relay, err := rabbitmq.NewRelay(next, ch, "", discardLogger())
	require.NoError(t, err)
	return relay
}

func TestNewRelay_DeclareFails(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "custom", "topic", true, false, false, false, amqp.Table(nil)).
		Return(errors.New("access refused"))

	relay, err := rabbitmq.NewRelay(new(MockNotifier), ch, "custom", discardLogger())

	require.Error(t, err)
	assert.Nil(t, relay)
}

func TestRelay_Publish_MirrorsStoreEvents(t *testing.T) {
	ch := new(MockChannel)
	next := new(MockNotifier)
	relay := newRelay(t, ch, next)

	next.On("Publish", kernel.StoreKey("s1"), "refresh_admin", nil).Once()

	var published amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "dispatch.events", "store.s1.refresh_admin", false, false, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(5).(amqp.Publishing)
		}).
		Return(nil).Once()

	relay.Publish("s1", "refresh_admin", nil)

	next.AssertExpectations(t)
	ch.AssertExpectations(t)
	assert.Equal(t, "application/json", published.ContentType)

	var msg rabbitmq.Message
	require.NoError(t, json.Unmarshal(published.Body, &msg))
	assert.Equal(t, "s1", msg.StoreKey)
	assert.Equal(t, "refresh_admin", msg.Event)
	assert.False(t, msg.PublishedAt.IsZero())
}

func TestRelay_Publish_BrokerFailureDoesNotPropagate(t *testing.T) {
	ch := new(MockChannel)
	next := new(MockNotifier)
	relay := newRelay(t, ch, next)

	next.On("Publish", kernel.StoreKey("s1"), "update_map", mock.Anything).Once()
	ch.On("PublishWithContext", mock.Anything, mock.Anything, "store.s1.update_map", false, false, mock.Anything).
		Return(amqp.ErrClosed).Once()

	assert.NotPanics(t, func() {
		relay.Publish("s1", "update_map", map[string]float64{"lat": 1})
	})
	next.AssertExpectations(t)
}

func TestRelay_UnicastAndGlobal_AreNotMirrored(t *testing.T) {
	ch := new(MockChannel)
	next := new(MockNotifier)
	relay := newRelay(t, ch, next)
	conn := kernel.NewUUID()

	next.On("PublishUnicast", conn, "refresh_driver", mock.Anything).Once()
	next.On("PublishGlobal", "server_restarting", nil).Once()

	relay.PublishUnicast(conn, "refresh_driver", nil)
	relay.PublishGlobal("server_restarting", nil)

	next.AssertExpectations(t)
	ch.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRelay_EmptyStoreKey_IsNotMirrored(t *testing.T) {
	ch := new(MockChannel)
	next := new(MockNotifier)
	relay := newRelay(t, ch, next)

	next.On("Publish", kernel.StoreKey(""), "refresh_admin", nil).Once()

	relay.Publish("", "refresh_admin", nil)

	ch.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "store.pizzaria-centro.update_map", rabbitmq.RoutingKey("pizzaria-centro", "update_map"))
}
