package cmd

import (
	"log/slog"
	"strconv"
	"time"

	adapter_http "oshxona/internal/adapters/in/http"
	"oshxona/internal/adapters/out/notify"
	"oshxona/internal/adapters/out/postgres"
	"oshxona/internal/adapters/out/sysclock"
	"oshxona/internal/core/application/usecases/commands"
	"oshxona/internal/core/application/usecases/queries"
	"oshxona/internal/core/domain/model/kernel"
	"oshxona/internal/core/domain/services"
	"oshxona/internal/core/ports"
	"oshxona/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	clock      ports.Clock
	settings   services.Settings
	resolver   services.ZoneResolver
	logger     *slog.Logger

	dispatchRetrySpec string
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	settings := tunedSettings(config)

	spec := config.DispatchRetrySpec
	if spec == "" {
		spec = "*/15 * * * * *"
	}

	return CompositionRoot{
		gormDB:            gormDB,
		uowFactory:        *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:          notify.NewTelegramNotifier(config.TelegramBotToken, logger),
		clock:             sysclock.New(),
		settings:          settings,
		resolver:          services.NewZoneResolver(fallbackLocation(config)),
		logger:            logger,
		dispatchRetrySpec: spec,
	}
}

// tunedSettings starts from the service defaults and applies the config
// overrides that parse.
func tunedSettings(config Config) services.Settings {
	settings := services.DefaultSettings()

	if v, err := strconv.ParseFloat(config.PickupProximityKm, 64); err == nil && v > 0 {
		settings.PickupProximityKm = v
	}
	if v, err := strconv.ParseFloat(config.DeliverProximityKm, 64); err == nil && v > 0 {
		settings.DeliverProximityKm = v
	}
	if v, err := strconv.Atoi(config.AutoCompleteGraceSeconds); err == nil && v > 0 {
		settings.AutoCompleteGrace = time.Duration(v) * time.Second
	}
	if v, err := strconv.Atoi(config.DefaultPreparationMinutes); err == nil && v > 0 {
		settings.DefaultPreparationMinutes = v
	}

	return settings
}

// fallbackLocation builds the resolver substitute for branches without a
// coordinate. Nil when not configured.
func fallbackLocation(config Config) *kernel.Location {
	lat, latErr := strconv.ParseFloat(config.DefaultBranchLat, 64)
	lon, lonErr := strconv.ParseFloat(config.DefaultBranchLon, 64)
	if latErr != nil || lonErr != nil {
		return nil
	}

	location, err := kernel.NewLocation(lat, lon)
	if err != nil {
		return nil
	}
	return &location
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) dispatchUoWFactory() commands.DispatchUoWFactory {
	return FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePickupCompletionScheduler() *jobs.PickupCompletionScheduler {
	return jobs.NewPickupCompletionScheduler(
		c.CreateCompletePickupCommandHandler(),
		c.clock,
		c.settings.AutoCompleteGrace,
		c.logger,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(), c.notifier, c.clock, c.CreatePickupCompletionScheduler())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(
		c.dispatchUoWFactory(), c.resolver, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCourierActionCommandHandler() commands.CourierActionCommandHandler {
	return commands.NewCourierActionCommandHandler(
		c.dispatchUoWFactory(), c.settings, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateConfirmArrivalCommandHandler() commands.ConfirmArrivalCommandHandler {
	return commands.NewConfirmArrivalCommandHandler(c.orderUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCompletePickupCommandHandler() commands.CompletePickupCommandHandler {
	return commands.NewCompletePickupCommandHandler(c.orderUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateGetBranchActiveOrdersQueryHandler() queries.GetBranchActiveOrdersQueryHandler {
	return queries.NewGetBranchActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryEstimateQueryHandler() queries.GetDeliveryEstimateQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetDeliveryEstimateQueryHandler(
		uow.ZoneRepository(),
		uow.BranchRepository(),
		c.resolver,
		services.NewDeliveryEstimator(c.settings),
		c.clock,
	)
}

func (c *CompositionRoot) CreateServer() *adapter_http.Server {
	return adapter_http.NewServer(
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateCourierActionCommandHandler(),
		c.CreateConfirmArrivalCommandHandler(),
		c.CreateGetDeliveryEstimateQueryHandler(),
		c.CreateGetBranchActiveOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignCourierCommandHandler(),
		c.dispatchUoWFactory(),
		c.dispatchRetrySpec,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
