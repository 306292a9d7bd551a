package commands

import (
	"context"

	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/ports"
)

// ChangeOrderStatusCommandHandler applies administrative status transitions.
// The read-modify-write of the order runs inside a single unit of work, and the
// notification fan-out happens strictly after commit. When a pickup order
// reaches picked_up the handler schedules its deferred auto-completion.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, notifier, clock, scheduler)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("order does not exist")
//	case errors.Is(err, order.ErrInvalidStatus):
//	    log.Println("transition not allowed")
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
	scheduler  PickupCompletionScheduler
}

// NewChangeOrderStatusCommandHandler creates a handler for administrative
// status changes. The scheduler may be nil when pickup auto-completion is not
// wired, for example in tests.
func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
	scheduler PickupCompletionScheduler,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		scheduler:  scheduler,
	}
}

// Handle transitions the order to the command's target status.
// Returns the updated aggregate on success. Transition rule violations surface
// as the order package's sentinel errors, unknown orders as errs.ErrObjectNotFound.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeOrderStatusCommand,
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

	now := h.clock.Now()
	if err = aggregate.ChangeStatus(command.Target(), command.UpdatedBy(), command.Note(), now); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	orderBranch := loadBranch(ctx, uow.BranchRepository(), aggregate)

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.scheduler != nil && aggregate.Type() == order.TypePickup && command.Target() == order.StatusPickedUp {
		h.scheduler.Schedule(aggregate.ID())
	}

	message := command.Note()
	if message == "" {
		message = "order moved to " + command.Target().String()
	}
	fanOut(ctx, h.notifier, aggregate, orderBranch, message, now)

	return aggregate, nil
}
