package commands

import (
	"context"

	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/ports"
)

// CompletePickupCommandHandler performs the deferred auto-completion of pickup
// orders. The order state is re-checked inside the transaction: if the order is
// no longer a picked-up pickup order by the time the timer fires, the handler
// is a silent no-op. That makes a stale timer harmless.
type CompletePickupCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewCompletePickupCommandHandler creates a handler for pickup auto-completion.
func NewCompletePickupCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) CompletePickupCommandHandler {
	return CompletePickupCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle completes the pickup order if it is still in picked_up status.
func (h CompletePickupCommandHandler) Handle(ctx context.Context, command CompletePickupCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Type() != order.TypePickup || aggregate.Status() != order.StatusPickedUp {
		return nil
	}

	now := h.clock.Now()
	if err = aggregate.ChangeStatus(order.StatusCompleted, "system", "pickup order completed", now); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	orderBranch := loadBranch(ctx, uow.BranchRepository(), aggregate)

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	fanOut(ctx, h.notifier, aggregate, orderBranch, "pickup order completed", now)

	return nil
}
