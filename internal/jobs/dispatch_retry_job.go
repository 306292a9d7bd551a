package jobs

import (
	"context"
	"errors"
	"log/slog"

	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/domain/model/order"
	"oshxona/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DispatchRetryJob periodically re-runs automatic courier assignment over the
// delivery orders that are still waiting for one.
type DispatchRetryJob struct {
	handler    commands.AssignCourierCommandHandler
	uowFactory commands.DispatchUoWFactory
	spec       string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDispatchRetryJob creates the retry job. The spec is a six-field cron
// expression, for example "*/15 * * * * *" for every fifteen seconds.
func NewDispatchRetryJob(
	handler commands.AssignCourierCommandHandler,
	uowFactory commands.DispatchUoWFactory,
	spec string,
	logger *slog.Logger,
) *DispatchRetryJob {
	return &DispatchRetryJob{
		handler:    handler,
		uowFactory: uowFactory,
		spec:       spec,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "dispatch_retry_job"),
	}
}

// Start schedules the job.
func (j *DispatchRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.tick)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started", "spec", j.spec)
	return nil
}

// Stop stops the job.
func (j *DispatchRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}

func (j *DispatchRetryJob) tick() {
	ctx := context.Background()

	unassigned, err := j.loadUnassigned(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load unassigned delivery orders", "error", err)
		return
	}

	for _, aggregate := range unassigned {
		cmd, cmdErr := commands.NewAssignCourierCommand(aggregate.ID(), nil)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Failed to build assignment command",
				"order_id", aggregate.ID().String(), "error", cmdErr)
			continue
		}

		if _, handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// No free courier and a concurrently closed order are expected
			// outcomes here, the next tick retries the rest.
			if errors.Is(handleErr, services.ErrNoCourierAvailable) ||
				errors.Is(handleErr, order.ErrOrderTerminal) {
				continue
			}
			j.logger.ErrorContext(ctx, "Dispatch retry failed",
				"order_id", aggregate.ID().String(), "error", handleErr)
		}
	}
}

// loadUnassigned reads the retry feed in its own short transaction.
func (j *DispatchRetryJob) loadUnassigned(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	return uow.OrderRepository().GetUnassignedDelivery(ctx)
}
