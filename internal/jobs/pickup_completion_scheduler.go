package jobs

import (
	"context"
	"log/slog"
	"time"

	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/ports"
)

// PickupCompletionScheduler arms a one-shot timer when a pickup order reaches
// picked_up and completes it after the grace interval. The completion handler
// re-reads the order at fire time and no-ops when the state moved on, so timers
// surviving past their order are harmless.
//
// Timers live in process memory only; orders stuck in picked_up across a
// restart stay there until an operator closes them.
type PickupCompletionScheduler struct {
	handler commands.CompletePickupCommandHandler
	clock   ports.Clock
	grace   time.Duration
	logger  *slog.Logger
}

// NewPickupCompletionScheduler creates a scheduler with the given grace interval.
func NewPickupCompletionScheduler(
	handler commands.CompletePickupCommandHandler,
	clock ports.Clock,
	grace time.Duration,
	logger *slog.Logger,
) *PickupCompletionScheduler {
	return &PickupCompletionScheduler{
		handler: handler,
		clock:   clock,
		grace:   grace,
		logger:  logger.With("component", "pickup_completion_scheduler"),
	}
}

// Schedule arms the auto-completion timer for one order.
func (s *PickupCompletionScheduler) Schedule(orderID kernel.UUID) {
	s.clock.After(s.grace, func() {
		ctx := context.Background()

		cmd, err := commands.NewCompletePickupCommand(orderID)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to build completion command",
				"order_id", orderID.String(), "error", err)
			return
		}

		if err = s.handler.Handle(ctx, cmd); err != nil {
			s.logger.ErrorContext(ctx, "Pickup auto-completion failed",
				"order_id", orderID.String(), "error", err)
		}
	})
}
