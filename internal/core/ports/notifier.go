package ports

import (
	"context"
	"time"
)

// Event is a status or assignment change fanned out to interested observers.
type Event struct {
	OrderID   string
	Status    string
	Message   string
	Timestamp time.Time
}

// Notifier delivers events to the customer channel and the branch real-time
// channel. Delivery is best-effort and at-most-once: the order's durable status
// change is committed before any notification is attempted, and a failed
// notification is logged by the adapter, never retried and never rolled back.
//
// Implementations must be injected explicitly; business logic never reaches a
// notification channel through ambient global state.
type Notifier interface {
	// NotifyCustomer delivers an event to the customer's chat.
	NotifyCustomer(ctx context.Context, chatID int64, event Event) error

	// NotifyBranchChannel delivers an event to the branch dashboard channel.
	NotifyBranchChannel(ctx context.Context, channelID int64, event Event) error
}
