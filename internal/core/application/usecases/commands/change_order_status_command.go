package commands

import (
	"errors"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
	ErrUpdatedByIsRequired = errors.New("updated by is required")
)

// ChangeOrderStatusCommand represents an administrative status change request
// for a single order: kitchen staff confirming an order, marking it preparing,
// ready, and so on. Courier-only transitions are rejected downstream by the
// order aggregate.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.StatusConfirmed, "operator:77", "")
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//
//	updated, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	updatedBy string
	note      string

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a validated status change command.
// The target must belong to the status vocabulary and updatedBy identifies the
// actor for the audit trail. The note is optional.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	updatedBy string,
	note string,
) (ChangeOrderStatusCommand, error) {
	command := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
		note:  note,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTarget(target),
		command.setUpdatedBy(updatedBy),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c ChangeOrderStatusCommand) Target() order.Status {
	return c.target
}

// UpdatedBy returns the actor performing the change.
func (c ChangeOrderStatusCommand) UpdatedBy() string {
	return c.updatedBy
}

// Note returns the optional free-form note recorded in the history entry.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *ChangeOrderStatusCommand) setUpdatedBy(updatedBy string) error {
	if updatedBy == "" {
		return ErrUpdatedByIsRequired
	}

	c.updatedBy = updatedBy
	return nil
}
