package commands

import (
	"context"
	"time"

	"oshxona/internal/core/domain/model/branch"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/ports"
)

// fanOut delivers an order event to the customer chat and, when the order's
// branch is known, to the branch dashboard channel. It runs only after the
// transaction has committed. Delivery failures are logged by the notifier
// adapter and never affect the already-committed state change.
func fanOut(
	ctx context.Context,
	notifier ports.Notifier,
	aggregate *order.Order,
	orderBranch *branch.Branch,
	message string,
	at time.Time,
) {
	if notifier == nil {
		return
	}

	event := ports.Event{
		OrderID:   aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		Message:   message,
		Timestamp: at,
	}

	_ = notifier.NotifyCustomer(ctx, aggregate.CustomerChatID(), event)

	if orderBranch != nil {
		_ = notifier.NotifyBranchChannel(ctx, orderBranch.ChannelID(), event)
	}
}

// loadBranch fetches the order's branch inside the current transaction so the
// post-commit fan-out knows the dashboard channel. A missing branch is not an
// error for the command itself; the caller simply skips the channel.
func loadBranch(ctx context.Context, repo ports.BranchRepository, aggregate *order.Order) *branch.Branch {
	branchID := aggregate.BranchID()
	if branchID == nil {
		return nil
	}

	b, err := repo.Get(ctx, *branchID)
	if err != nil {
		return nil
	}
	return b
}
