package cmd

import (
	"log/slog"
	"time"

	httpadapter "campusdelivery/internal/adapters/in/http"
	"campusdelivery/internal/adapters/out/dispatcher"
	"campusdelivery/internal/adapters/out/postgres"
	"campusdelivery/internal/adapters/out/postgres/referencerepo"
	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/dispatch"

	"go.temporal.io/sdk/client"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateReferenceResolver() commands.ReferenceResolver {
	return commands.NewReferenceResolver(
		referencerepo.NewGormVendorRepository(c.gormDB),
		referencerepo.NewGormLocationRepository(c.gormDB),
		c.logger,
	)
}

func (c *CompositionRoot) CreateOrderDispatcher(temporalClient client.Client) ports.OrderDispatcher {
	return dispatcher.NewTemporalOrderDispatcher(temporalClient, c.configs.DispatchTaskQueue, c.logger)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler(
	orderDispatcher ports.OrderDispatcher,
) commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(
		c.CreateReferenceResolver(),
		orderDispatcher,
		commands.SubmitOrderTimeouts{
			Lookup:   c.configs.LookupTimeout,
			Dispatch: c.configs.DispatchTimeout,
		},
		time.Now,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRegisterOrderCommandHandler() commands.RegisterOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.configs.LookupTimeout)
}

func (c *CompositionRoot) CreateHTTPServer(orderDispatcher ports.OrderDispatcher) *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateSubmitOrderCommandHandler(orderDispatcher),
		c.CreateGetOrderQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateDispatchActivities(publisher ports.OrderEventPublisher) *dispatch.Activities {
	return dispatch.NewActivities(c.CreateRegisterOrderCommandHandler(), publisher)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
