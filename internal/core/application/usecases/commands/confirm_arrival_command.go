package commands

import (
	"errors"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/guard"
)

var ErrConfirmArrivalCommandIsNotConstructed = errors.New(
	"ConfirmArrivalCommand must be created via NewConfirmArrivalCommand constructor",
)

// ConfirmArrivalCommand records that the customer of a dine-in or table order
// has arrived at the branch. The arrival unlocks the delivered transition for
// those order types.
type ConfirmArrivalCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	updatedBy string

	guard guard.ConstructorGuard
}

// NewConfirmArrivalCommand creates a validated arrival confirmation command.
func NewConfirmArrivalCommand(orderID kernel.UUID, updatedBy string) (ConfirmArrivalCommand, error) {
	command := ConfirmArrivalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUpdatedBy(updatedBy),
	); err != nil {
		return ConfirmArrivalCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmArrivalCommandIsNotConstructed if validation fails.
func (c ConfirmArrivalCommand) Validate() error {
	return c.guard.Validate(ErrConfirmArrivalCommandIsNotConstructed)
}

// OrderID returns the identifier of the dine-in or table order.
func (c ConfirmArrivalCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UpdatedBy returns the actor confirming the arrival.
func (c ConfirmArrivalCommand) UpdatedBy() string {
	return c.updatedBy
}

func (c *ConfirmArrivalCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ConfirmArrivalCommand) setUpdatedBy(updatedBy string) error {
	if updatedBy == "" {
		return ErrUpdatedByIsRequired
	}

	c.updatedBy = updatedBy
	return nil
}
