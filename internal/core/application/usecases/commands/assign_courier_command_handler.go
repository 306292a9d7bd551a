package commands

import (
	"context"
	"errors"

	"oshxona/internal/core/domain/model/courier"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/domain/services"
	"oshxona/internal/core/ports"
)

// ErrCourierUnavailable is returned when an explicitly requested courier exists
// but cannot take orders because it was deactivated.
var ErrCourierUnavailable = errors.New("courier is unavailable")

// AssignCourierCommandHandler orchestrates courier assignment for delivery
// orders. For automatic selection it resolves the order's branch through the
// delivery zones first, then picks the least-loaded available courier of that
// branch. All writes land in a single transaction; the fan-out runs after
// commit.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, resolver, notifier, clock)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoCourierAvailable):
//	    log.Println("hold the order, retry later")
//	case errors.Is(err, order.ErrOrderTerminal):
//	    log.Println("order is already finished")
//	}
type AssignCourierCommandHandler struct {
	uowFactory DispatchUoWFactory
	resolver   services.ZoneResolver
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewAssignCourierCommandHandler creates a handler for courier assignment.
func NewAssignCourierCommandHandler(
	uowFactory DispatchUoWFactory,
	resolver services.ZoneResolver,
	notifier ports.Notifier,
	clock ports.Clock,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle assigns a courier to the order named by the command.
//
// Explicit assignment requires an existing, active courier; assigning the
// courier that already holds the order is an idempotent no-op, a different
// courier overrides the previous one. Automatic assignment picks the
// least-loaded available courier of the order's branch and returns
// services.ErrNoCourierAvailable when there is none.
//
// If the order entered the system without a branch, the delivery destination is
// resolved through the active zones before couriers are considered.
func (h AssignCourierCommandHandler) Handle(
	ctx context.Context,
	command AssignCourierCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if aggregate.Status().IsClosed() {
		return nil, order.ErrOrderTerminal
	}

	if aggregate.CourierID() != nil && command.CourierID() != nil &&
		aggregate.CourierID().IsEqual(*command.CourierID()) {
		return aggregate, nil
	}

	if err = h.ensureBranch(ctx, uow, aggregate); err != nil {
		return nil, err
	}

	assignee, err := h.pickCourier(ctx, uow, aggregate, command.CourierID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AssignCourier(assignee.ID()); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	message := "courier " + assignee.Name() + " assigned"

	// Kitchen statuses stay put and only get the announcement; everything
	// else moves to assigned through the state machine so the history shows
	// who holds the order, including courier overrides.
	switch aggregate.Status() {
	case order.StatusReady, order.StatusPreparing:
	default:
		if err = aggregate.ChangeStatus(order.StatusAssigned, "dispatch", message, now); err != nil {
			return nil, err
		}
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	orderBranch := loadBranch(ctx, uow.BranchRepository(), aggregate)

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	fanOut(ctx, h.notifier, aggregate, orderBranch, message, now)

	return aggregate, nil
}

// ensureBranch resolves the order's governing branch from its delivery
// destination when none was set yet. Resolution failing to find a branch is a
// soft condition here: explicit assignment can still proceed without one.
func (h AssignCourierCommandHandler) ensureBranch(
	ctx context.Context,
	uow DispatchUoW,
	aggregate *order.Order,
) error {
	if aggregate.BranchID() != nil {
		return nil
	}

	info := aggregate.DeliveryInfo()
	if info == nil {
		return nil
	}

	zones, err := uow.ZoneRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}
	branches, err := uow.BranchRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	resolution, err := h.resolver.Resolve(info.Location, h.clock.Now(), zones, branches)
	if err != nil {
		return err
	}
	if resolution.BranchID == nil {
		return nil
	}

	return aggregate.SetBranch(*resolution.BranchID)
}

func (h AssignCourierCommandHandler) pickCourier(
	ctx context.Context,
	uow DispatchUoW,
	aggregate *order.Order,
	explicit *kernel.UUID,
) (*courier.Courier, error) {
	if explicit != nil {
		candidate, err := uow.CourierRepository().Get(ctx, *explicit)
		if err != nil {
			return nil, err
		}
		if !candidate.IsActive() {
			return nil, ErrCourierUnavailable
		}
		return candidate, nil
	}

	branchID := aggregate.BranchID()
	if branchID == nil {
		return nil, services.ErrNoCourierAvailable
	}

	candidates, err := uow.CourierRepository().GetAvailableByBranch(ctx, *branchID)
	if err != nil {
		return nil, err
	}

	return services.NewCourierSelector().Best(ctx, candidates, uow.OrderRepository())
}
