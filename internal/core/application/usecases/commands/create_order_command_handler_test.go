package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"logistica/internal/core/application/usecases/commands"
	"logistica/internal/core/domain/model/kernel"
	"logistica/internal/core/domain/model/order"
	"logistica/internal/core/ports"
	"logistica/internal/pkg/errs"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand("s1", "Ana", "Rua Augusta, 100", "11 98888-7777", 42.5, -23.55, -46.63)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Publish", kernel.StoreKey("s1"), ports.EventRefreshAdmin, nil).Return().Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, notifier, fixedClock)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Regexp(t, `^PED-[0-9A-F]{8}$`, res.OrderID.String())
	assert.Regexp(t, `^[1-9][0-9]{3}$`, res.DeliveryCode)
	assert.Equal(t, order.Pending, res.Order.Status())
	assert.Nil(t, res.Order.Courier())
	assert.Equal(t, fixedNow, res.Order.CreatedAt())
	assert.True(t, res.Order.VerifyCode(res.DeliveryCode))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	notifier := new(MockNotifier)

	h := commands.NewCreateOrderCommandHandler(factory, notifier, fixedClock)
	_, err := h.Handle(ctx, commands.CreateOrderCommand{})

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_MissingClientFields(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand("s1", "", "", "", 10, 0, 0)
	require.NoError(t, err)
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), fixedClock)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddErrorDoesNotNotify(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)
	storeErr := errs.NewDurableStoreError("insert order", errors.New("connection reset"))

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(storeErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, notifier, fixedClock)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrDurableStoreFailed)
	uow.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitErrorDoesNotNotify(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, notifier, fixedClock)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), fixedClock)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}
