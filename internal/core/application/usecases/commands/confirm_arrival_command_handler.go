package commands

import (
	"context"

	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/ports"
)

// ConfirmArrivalCommandHandler records the customer-arrived event on a dine-in
// or table order. Confirming twice is idempotent and does not duplicate the
// history event.
type ConfirmArrivalCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	clock      ports.Clock
}

// NewConfirmArrivalCommandHandler creates a handler for arrival confirmations.
func NewConfirmArrivalCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock ports.Clock,
) ConfirmArrivalCommandHandler {
	return ConfirmArrivalCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
	}
}

// Handle records the arrival event. Non-dine-in orders are rejected with a
// validation error; repeated confirmations succeed without effect.
func (h ConfirmArrivalCommandHandler) Handle(
	ctx context.Context,
	command ConfirmArrivalCommand,
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

	alreadyArrived := aggregate.HasCustomerArrived()

	now := h.clock.Now()
	if err = aggregate.ConfirmArrival(command.UpdatedBy(), now); err != nil {
		return nil, err
	}

	if alreadyArrived {
		return aggregate, nil
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	orderBranch := loadBranch(ctx, uow.BranchRepository(), aggregate)

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	fanOut(ctx, h.notifier, aggregate, orderBranch, "customer arrived", now)

	return aggregate, nil
}
