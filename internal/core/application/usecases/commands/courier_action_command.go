package commands

import (
	"errors"
	"fmt"

	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/pkg/errs"
	"oshxona/internal/pkg/guard"
)

var (
	ErrCourierActionCommandIsNotConstructed = errors.New(
		"CourierActionCommand must be created via NewCourierActionCommand constructor",
	)
	ErrLocationIsRequired = errors.New("courier location is required for this action")
)

// CourierAction names one step of the courier delivery flow.
type CourierAction string

const (
	ActionAccept    CourierAction = "accept"
	ActionOnWay     CourierAction = "on_way"
	ActionPickedUp  CourierAction = "picked_up"
	ActionDelivered CourierAction = "delivered"
	ActionCancel    CourierAction = "cancel"
	ActionLocation  CourierAction = "location"
)

// Validate checks the action against the fixed vocabulary.
func (a CourierAction) Validate() error {
	switch a {
	case ActionAccept, ActionOnWay, ActionPickedUp, ActionDelivered, ActionCancel, ActionLocation:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"action", fmt.Errorf("%q is not a valid courier action", string(a)))
	}
}

// CourierActionCommand represents one courier-driven step on a delivery order:
// accepting it, heading out, picking it up, delivering, cancelling, or pushing
// a live location update. Every action except cancel carries the courier's
// reported position.
//
// Example:
//
//	loc, _ := kernel.NewLocation(41.3111, 69.2797)
//	cmd, err := NewCourierActionCommand(orderID, courierID, ActionPickedUp, &loc, "")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if result.Warning != nil {
//	    // too far from the branch, nothing was changed
//	}
type CourierActionCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID
	action    CourierAction
	location  *kernel.Location
	reason    string

	guard guard.ConstructorGuard
}

// NewCourierActionCommand creates a validated courier action command.
// The location is mandatory for every action except cancel; the reason is used
// only by cancel and may be empty.
func NewCourierActionCommand(
	orderID kernel.UUID,
	courierID kernel.UUID,
	action CourierAction,
	location *kernel.Location,
	reason string,
) (CourierActionCommand, error) {
	command := CourierActionCommand{
		guard:  guard.NewConstructorGuard(),
		reason: reason,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCourierID(courierID),
		command.setAction(action),
		command.setLocation(action, location),
	); err != nil {
		return CourierActionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCourierActionCommandIsNotConstructed if validation fails.
func (c CourierActionCommand) Validate() error {
	return c.guard.Validate(ErrCourierActionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being acted on.
func (c CourierActionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the acting courier.
func (c CourierActionCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Action returns the courier flow step to perform.
func (c CourierActionCommand) Action() CourierAction {
	return c.action
}

// Location returns the courier's reported position, nil only for cancel.
func (c CourierActionCommand) Location() *kernel.Location {
	return c.location
}

// Reason returns the free-form cancellation reason.
func (c CourierActionCommand) Reason() string {
	return c.reason
}

func (c *CourierActionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CourierActionCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CourierActionCommand) setAction(action CourierAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *CourierActionCommand) setLocation(action CourierAction, location *kernel.Location) error {
	if location == nil {
		if action == ActionCancel {
			return nil
		}
		return ErrLocationIsRequired
	}
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
