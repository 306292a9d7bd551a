package jobs_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/ports"
	"oshxona/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *mockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *mockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int64, error) {
	args := m.Called(ctx, courierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepository) GetUnassignedDelivery(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type mockBranchRepository struct {
	mock.Mock
}

func (m *mockBranchRepository) Get(ctx context.Context, id kernel.UUID) (*branch.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*branch.Branch), args.Error(1)
}

func (m *mockBranchRepository) GetAllActive(ctx context.Context) ([]*branch.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*branch.Branch), args.Error(1)
}

type mockOrderUoW struct {
	mock.Mock
}

func (m *mockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *mockOrderUoW) BranchRepository() ports.BranchRepository {
	args := m.Called()
	return args.Get(0).(ports.BranchRepository)
}

type mockOrderUoWFactory struct {
	mock.Mock
}

func (m *mockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyCustomer(ctx context.Context, chatID int64, event ports.Event) error {
	args := m.Called(ctx, chatID, event)
	return args.Error(0)
}

func (m *mockNotifier) NotifyBranchChannel(ctx context.Context, channelID int64, event ports.Event) error {
	args := m.Called(ctx, channelID, event)
	return args.Error(0)
}

// inlineClock fires timers synchronously so the test observes the outcome
// without sleeping.
type inlineClock struct {
	now time.Time
}

func (c inlineClock) Now() time.Time { return c.now }

func (c inlineClock) After(_ time.Duration, fn func()) { fn() }

func pickedUpPickupOrder(t *testing.T, at time.Time) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Plov", 1, 38000, 25)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), order.TypePickup, kernel.NewUUID(), 880001, []order.Item{item}, at)
	require.NoError(t, err)
	require.NoError(t, aggregate.ChangeStatus(order.StatusPickedUp, "branch", "customer picked up", at))
	return aggregate
}

func TestPickupCompletionScheduler_CompletesAfterGrace(t *testing.T) {
	at := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
	aggregate := pickedUpPickupOrder(t, at)

	repo := new(mockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)
	repo.On("Update", mock.Anything, aggregate).Return(nil)

	uow := new(mockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("BranchRepository").Return(new(mockBranchRepository))

	factory := new(mockOrderUoWFactory)
	factory.On("Create").Return(uow)

	notifier := new(mockNotifier)
	notifier.On("NotifyCustomer", mock.Anything, int64(880001), mock.Anything).Return(nil)

	clock := inlineClock{now: at.Add(10 * time.Second)}
	handler := commands.NewCompletePickupCommandHandler(factory, notifier, clock)
	scheduler := jobs.NewPickupCompletionScheduler(handler, clock, 10*time.Second, slog.Default())

	scheduler.Schedule(aggregate.ID())

	assert.Equal(t, order.StatusCompleted, aggregate.Status())
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPickupCompletionScheduler_StaleTimerIsSilent(t *testing.T) {
	at := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
	aggregate := pickedUpPickupOrder(t, at)
	require.NoError(t, aggregate.ChangeStatus(order.StatusCompleted, "branch", "closed by operator", at))

	repo := new(mockOrderRepository)
	repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil)

	uow := new(mockOrderUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	uow.On("OrderRepository").Return(repo)

	factory := new(mockOrderUoWFactory)
	factory.On("Create").Return(uow)

	clock := inlineClock{now: at.Add(10 * time.Second)}
	handler := commands.NewCompletePickupCommandHandler(factory, new(mockNotifier), clock)
	scheduler := jobs.NewPickupCompletionScheduler(handler, clock, 10*time.Second, slog.Default())

	scheduler.Schedule(aggregate.ID())

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
