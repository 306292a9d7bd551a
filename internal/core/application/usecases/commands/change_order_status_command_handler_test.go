package commands_test

import (
	"testing"

	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, order.TypeDelivery)
	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.StatusConfirmed, "operator:7", "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("BranchRepository").Return(branchRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyCustomer", mock.Anything, aggregate.CustomerChatID(), mock.Anything).Return(nil).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, stubClock{now: fixedTime()}, nil)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, updated.Status())

	history := updated.History()
	require.Len(t, history, 2)
	assert.Equal(t, order.StatusConfirmed, history[1].Status)
	assert.Equal(t, "operator:7", history[1].UpdatedBy)

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_SchedulesPickupCompletion(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, order.TypePickup)
	require.NoError(t, aggregate.ChangeStatus(order.StatusReady, "operator:7", "", fixedTime()))

	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.StatusPickedUp, "operator:7", "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	branchRepo := new(MockBranchRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("BranchRepository").Return(branchRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, aggregate).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("NotifyCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	scheduler := new(MockScheduler)
	scheduler.On("Schedule", aggregate.ID()).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, notifier, stubClock{now: fixedTime()}, scheduler)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPickedUp, updated.Status())
	scheduler.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_TransitionRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := newDeliveryOrder(t, nil)

	// delivered without an assigned courier
	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.StatusDelivered, "operator:7", "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, nil, stubClock{now: fixedTime()}, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrCourierRequired)
	assert.Equal(t, order.StatusPending, aggregate.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t, order.TypeDelivery)
	cmd, err := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.StatusConfirmed, "operator:7", "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", mock.Anything, aggregate.ID()).
		Return(nil, errs.NewObjectNotFoundError("orderID", aggregate.ID())).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, nil, stubClock{now: fixedTime()}, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChangeOrderStatusCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewChangeOrderStatusCommandHandler(factory, nil, stubClock{now: fixedTime()}, nil)

	var cmd commands.ChangeOrderStatusCommand
	_, err := h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
}
