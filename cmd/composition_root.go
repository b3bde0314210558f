package cmd

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"ordering/internal/adapters/out/notifier"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/catalogrepo"
	"ordering/internal/adapters/out/postgres/userrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

// defaultStaleOrderTTL applies when STALE_ORDER_TTL_MINUTES is absent or malformed.
const defaultStaleOrderTTL = 30 * time.Minute

// CompositionRoot wires adapters into use case handlers.
// All construction happens here so the rest of the application stays free of
// wiring concerns.
type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	logger        *slog.Logger
	staleOrderTTL time.Duration
}

// NewCompositionRoot creates the application object graph from config and an
// open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	ttl := defaultStaleOrderTTL
	if minutes, err := strconv.Atoi(config.StaleOrderTTLMin); err == nil && minutes > 0 {
		ttl = time.Duration(minutes) * time.Minute
	}

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:        slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		staleOrderTTL: ttl,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// CreateComposeOrderCommandHandler wires the order placement use case.
func (c *CompositionRoot) CreateComposeOrderCommandHandler() commands.ComposeOrderCommandHandler {
	return commands.NewComposeOrderCommandHandler(
		c.orderUoWFactory(),
		userrepo.NewGormUserReader(c.gormDB),
		catalogrepo.NewGormProductCatalog(c.gormDB),
	)
}

// CreateUpdateOrderStatusCommandHandler wires the status transition use case.
func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(
		c.orderUoWFactory(),
		notifier.NewSlogPaymentNotifier(c.logger),
		notifier.NewSlogShipmentNotifier(c.logger),
	)
}

// CreateAddOrderItemCommandHandler wires the line addition use case.
func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	return commands.NewAddOrderItemCommandHandler(
		c.orderUoWFactory(),
		catalogrepo.NewGormProductCatalog(c.gormDB),
	)
}

// CreateRemoveOrderItemCommandHandler wires the line removal use case.
func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	return commands.NewRemoveOrderItemCommandHandler(c.orderUoWFactory())
}

// CreateUpdateItemQuantityCommandHandler wires the quantity change use case.
func (c *CompositionRoot) CreateUpdateItemQuantityCommandHandler() commands.UpdateItemQuantityCommandHandler {
	return commands.NewUpdateItemQuantityCommandHandler(c.orderUoWFactory())
}

// CreateUpdateOrderDiscountCommandHandler wires the discount change use case.
func (c *CompositionRoot) CreateUpdateOrderDiscountCommandHandler() commands.UpdateOrderDiscountCommandHandler {
	return commands.NewUpdateOrderDiscountCommandHandler(c.orderUoWFactory())
}

// CreateCancelStaleOrdersCommandHandler wires the stale order sweep.
func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(
		c.orderUoWFactory(),
		notifier.NewSlogPaymentNotifier(c.logger),
	)
}

// CreateGetOrdersByUserQueryHandler wires the user order history query.
func (c *CompositionRoot) CreateGetOrdersByUserQueryHandler() queries.GetOrdersByUserQueryHandler {
	return queries.NewGetOrdersByUserQueryHandler(c.gormDB)
}

// CreateGetUndeliveredOrdersQueryHandler wires the open orders query.
func (c *CompositionRoot) CreateGetUndeliveredOrdersQueryHandler() queries.GetUndeliveredOrdersQueryHandler {
	return queries.NewGetUndeliveredOrdersQueryHandler(c.gormDB)
}

// CreateJobManager wires the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCancelStaleOrdersCommandHandler(),
		c.staleOrderTTL,
		c.logger,
	)
}

// FuncOrderUoWFactory adapts a closure to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
