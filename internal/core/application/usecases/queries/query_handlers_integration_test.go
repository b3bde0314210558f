package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// QueryHandlersIntegrationTestSuite exercises the read-side SQL against a
// real PostgreSQL schema populated through the order repository, so the raw
// queries stay aligned with the write-side table layout.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container        *postgres.PostgresContainer
	db               *gorm.DB
	repo             *orderrepo.GormOrderRepository
	byUserHandler    queries.GetOrdersByUserQueryHandler
	undeliveredQuery queries.GetUndeliveredOrdersQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.byUserHandler = queries.NewGetOrdersByUserQueryHandler(db)
	suite.undeliveredQuery = queries.NewGetUndeliveredOrdersQueryHandler(db)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) addOrder(userID kernel.UUID) *order.Order {
	price, err := kernel.MoneyFromFloat(99.99)
	suite.Require().NoError(err)
	lineDiscount, err := kernel.MoneyFromFloat(10)
	suite.Require().NoError(err)

	item, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		2, price, lineDiscount,
	)
	suite.Require().NoError(err)

	orderDiscount, err := kernel.MoneyFromFloat(5)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.Item{item}, orderDiscount)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrdersByUser_ComputesAmounts() {
	userID := kernel.NewUUID()
	o := suite.addOrder(userID)
	suite.addOrder(kernel.NewUUID()) // other user, must not appear

	query, err := queries.NewGetOrdersByUserQuery(userID)
	suite.Require().NoError(err)

	summaries, err := suite.byUserHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)

	summary := summaries[0]
	suite.True(summary.ID.IsEqual(o.ID()))
	suite.True(summary.UserID.IsEqual(userID))
	suite.Equal("Pending", summary.Status)
	suite.Equal(1, summary.ItemCount)
	suite.Equal("5.00", summary.DiscountAmount.StringFixed(2))
	suite.Equal("184.98", summary.FinalAmount.StringFixed(2))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrdersByUser_EmptyResult() {
	query, err := queries.NewGetOrdersByUserQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	summaries, err := suite.byUserHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(summaries)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetUndeliveredOrders_ExcludesTerminal() {
	ctx := context.Background()
	open := suite.addOrder(kernel.NewUUID())
	closed := suite.addOrder(kernel.NewUUID())

	suite.Require().NoError(closed.UpdateStatus(order.Cancelled))
	suite.Require().NoError(suite.repo.Update(ctx, closed))

	summaries, err := suite.undeliveredQuery.Handle(ctx, queries.NewGetUndeliveredOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.True(summaries[0].ID.IsEqual(open.ID()))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
