package commands

import (
	"errors"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand attaches a courier to a delivery order. With an explicit
// courier ID the named courier is assigned; without one the least-loaded
// courier of the order's branch is selected automatically.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(orderID, nil) // auto-select
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a validated assignment command.
// courierID may be nil, which requests automatic selection.
func NewAssignCourierCommand(orderID kernel.UUID, courierID *kernel.UUID) (AssignCourierCommand, error) {
	command := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCourierID(courierID),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the explicitly requested courier, or nil for auto-selection.
func (c AssignCourierCommand) CourierID() *kernel.UUID {
	return c.courierID
}

func (c *AssignCourierCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignCourierCommand) setCourierID(courierID *kernel.UUID) error {
	if courierID == nil {
		return nil
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
