package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/domain/services"
	"oshxona/internal/core/ports"
)

// ErrNotAssignedCourier is returned when a courier acts on an order that is
// held by a different courier or has no courier at all.
var ErrNotAssignedCourier = errors.New("order is assigned to a different courier")

// CourierActionResult carries the outcome of a courier action. When the
// proximity gate rejects a pickup or delivery the order is returned unchanged
// and Warning explains the measured distance; no error is raised.
type CourierActionResult struct {
	Order   *order.Order
	Warning *order.ProximityWarning
}

// CourierActionCommandHandler executes courier flow steps against the order
// aggregate: status transitions, courier-flow timestamps, proximity gates. The
// acting courier's own position is refreshed alongside, so dispatch always
// selects on recent data.
type CourierActionCommandHandler struct {
	uowFactory DispatchUoWFactory
	settings   services.Settings
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewCourierActionCommandHandler creates a handler for courier flow steps.
func NewCourierActionCommandHandler(
	uowFactory DispatchUoWFactory,
	settings services.Settings,
	notifier ports.Notifier,
	clock ports.Clock,
) CourierActionCommandHandler {
	return CourierActionCommandHandler{
		uowFactory: uowFactory,
		settings:   settings,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle performs one courier action on the order.
//
// The acting courier must be the one assigned to the order, otherwise
// ErrNotAssignedCourier is returned. Pickup and delivery are gated by distance;
// a failed gate is a soft outcome: the result carries a ProximityWarning, the
// order is untouched and no notification goes out.
func (h CourierActionCommandHandler) Handle(
	ctx context.Context,
	command CourierActionCommand,
) (CourierActionResult, error) {
	if err := command.Validate(); err != nil {
		return CourierActionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CourierActionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return CourierActionResult{}, err
	}

	assigned := aggregate.CourierID()
	if assigned == nil || !assigned.IsEqual(command.CourierID()) {
		return CourierActionResult{}, ErrNotAssignedCourier
	}

	now := h.clock.Now()
	by := "courier:" + command.CourierID().String()

	warning, message, err := h.apply(ctx, uow, aggregate, command, by, now)
	if err != nil {
		return CourierActionResult{}, err
	}
	if warning != nil {
		return CourierActionResult{Order: aggregate, Warning: warning}, nil
	}

	if err = h.refreshCourier(ctx, uow, command, now); err != nil {
		return CourierActionResult{}, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return CourierActionResult{}, err
	}

	orderBranch := loadBranch(ctx, uow.BranchRepository(), aggregate)

	if err = uow.Commit(ctx); err != nil {
		return CourierActionResult{}, err
	}

	fanOut(ctx, h.notifier, aggregate, orderBranch, message, now)

	return CourierActionResult{Order: aggregate}, nil
}

//nolint:cyclop //one branch per action keeps the flow readable
func (h CourierActionCommandHandler) apply(
	ctx context.Context,
	uow DispatchUoW,
	aggregate *order.Order,
	command CourierActionCommand,
	by string,
	now time.Time,
) (*order.ProximityWarning, string, error) {
	switch command.Action() {
	case ActionAccept:
		return nil, "courier accepted the order",
			aggregate.Accept(*command.Location(), by, now)

	case ActionOnWay:
		return nil, "courier is on the way",
			aggregate.MarkOnWay(*command.Location(), by, now)

	case ActionPickedUp:
		reference := h.pickupReference(ctx, uow, aggregate, *command.Location())
		warning, err := aggregate.PickUp(
			*command.Location(), reference, h.settings.PickupProximityKm, by, now)
		return warning, "courier picked up the order", err

	case ActionDelivered:
		warning, err := aggregate.Deliver(
			*command.Location(), h.settings.DeliverProximityKm, by, now)
		return warning, "order delivered", err

	case ActionCancel:
		message := "delivery cancelled by courier"
		if command.Reason() != "" {
			message = message + ": " + command.Reason()
		}
		return nil, message, aggregate.CancelByCourier(command.Reason(), by, now)

	case ActionLocation:
		return nil, "courier location updated",
			aggregate.UpdateCourierLocation(*command.Location(), now)

	default:
		return nil, "", fmt.Errorf("%w: unhandled action %q", order.ErrInvalidStatus, command.Action())
	}
}

// pickupReference returns the coordinate the pickup gate measures against.
// When the branch is unknown or has no coordinate, the gate degrades to a pass:
// the courier's own position is used as the reference.
func (h CourierActionCommandHandler) pickupReference(
	ctx context.Context,
	uow DispatchUoW,
	aggregate *order.Order,
	courierLocation kernel.Location,
) kernel.Location {
	orderBranch := loadBranch(ctx, uow.BranchRepository(), aggregate)
	if orderBranch == nil || orderBranch.Location() == nil {
		return courierLocation
	}
	return *orderBranch.Location()
}

// refreshCourier mirrors the reported position onto the courier aggregate.
func (h CourierActionCommandHandler) refreshCourier(
	ctx context.Context,
	uow DispatchUoW,
	command CourierActionCommand,
	now time.Time,
) error {
	if command.Location() == nil {
		return nil
	}

	couriersRepo := uow.CourierRepository()

	assignee, err := couriersRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}
	if err = assignee.UpdateLocation(*command.Location(), now); err != nil {
		return err
	}
	return couriersRepo.Update(ctx, assignee)
}
