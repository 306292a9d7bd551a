package order

import (
	"fmt"
)

// Status represents the lifecycle state of an order.
// The set of reachable states depends on the order type: delivery orders travel
// through courier-driven states (assigned, on_delivery, picked_up, delivered),
// pickup orders stop at picked_up before auto-completion, and dine-in/table
// orders require a confirmed customer arrival before delivered.
//
// Status values are persisted and exposed over the wire as snake_case strings.
type Status string

const (
	// StatusPending is the initial state of every order.
	StatusPending Status = "pending"
	// StatusConfirmed means the branch accepted the order.
	StatusConfirmed Status = "confirmed"
	// StatusAssigned means a courier has been attached to the order.
	StatusAssigned Status = "assigned"
	// StatusPreparing means the kitchen is working on the order.
	StatusPreparing Status = "preparing"
	// StatusReady means the order is ready to be handed over.
	StatusReady Status = "ready"
	// StatusOnDelivery means the courier is moving toward the customer.
	StatusOnDelivery Status = "on_delivery"
	// StatusPickedUp means the order left the branch with the courier or customer.
	StatusPickedUp Status = "picked_up"
	// StatusDelivered means the order reached the customer. A delivery order may
	// still move to completed as an administrative close-out step.
	StatusDelivered Status = "delivered"
	// StatusCompleted is the final state of a successful order.
	StatusCompleted Status = "completed"
	// StatusCancelled is the final state of an aborted order.
	StatusCancelled Status = "cancelled"
)

// EventCustomerArrived is the history marker recorded when a dine-in or table
// customer confirms arrival. It is a history event, not an order status: it never
// becomes the value of Order.Status, but its presence gates the delivered state
// for dine-in and table orders.
const EventCustomerArrived Status = "customer_arrived"

// getValidStatusStrings returns the fixed status vocabulary.
// EventCustomerArrived is intentionally excluded: it is an event marker.
func getValidStatusStrings() map[Status]struct{} {
	return map[Status]struct{}{
		StatusPending:    {},
		StatusConfirmed:  {},
		StatusAssigned:   {},
		StatusPreparing:  {},
		StatusReady:      {},
		StatusOnDelivery: {},
		StatusPickedUp:   {},
		StatusDelivered:  {},
		StatusCompleted:  {},
		StatusCancelled:  {},
	}
}

// Validate checks if the Status value belongs to the fixed vocabulary.
// Returns a wrapped ErrInvalidStatus for unknown values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %q is not a valid status", ErrInvalidStatus, string(s))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status permits no further transitions at all.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsClosed reports whether the order is past the point where a courier may be
// assigned. Delivered counts as closed even though an administrative move to
// completed is still possible.
func (s Status) IsClosed() bool {
	return s == StatusDelivered || s.IsTerminal()
}

// IsCourierActive reports whether an order in this status counts toward a
// courier's active-order load.
func (s Status) IsCourierActive() bool {
	return s == StatusAssigned || s == StatusOnDelivery
}
