package commands

import (
	"errors"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/guard"
)

var ErrCompletePickupCommandIsNotConstructed = errors.New(
	"CompletePickupCommand must be created via NewCompletePickupCommand constructor",
)

// CompletePickupCommand finalizes a pickup order some time after the customer
// collected it. It is issued by the deferred auto-completion timer, never by an
// operator.
type CompletePickupCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompletePickupCommand creates a validated auto-completion command.
func NewCompletePickupCommand(orderID kernel.UUID) (CompletePickupCommand, error) {
	command := CompletePickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return CompletePickupCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompletePickupCommandIsNotConstructed if validation fails.
func (c CompletePickupCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupCommandIsNotConstructed)
}

// OrderID returns the identifier of the pickup order to complete.
func (c CompletePickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CompletePickupCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
