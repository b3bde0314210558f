package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(itemCount int) *order.Order {
	items := make([]order.Item, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		price, err := kernel.MoneyFromFloat(99.99)
		suite.Require().NoError(err)
		discount, err := kernel.MoneyFromFloat(10)
		suite.Require().NoError(err)

		item, err := order.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			2, price, discount,
		)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	orderDiscount, err := kernel.MoneyFromFloat(5)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items, orderDiscount)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	o := suite.newOrder(2)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(o))
	suite.Equal(order.Pending, restored.Status())
	suite.Equal(1, restored.Version())
	suite.Len(restored.Items(), 2)
	suite.Equal(o.FinalAmount().String(), restored.FinalAmount().String())

	// Insertion order survives persistence
	for i, item := range o.Items() {
		suite.True(restored.Items()[i].IsEqual(item))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_IncrementsVersion() {
	ctx := context.Background()
	o := suite.newOrder(2)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.UpdateStatus(order.Confirmed))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, restored.Status())
	suite.Equal(2, restored.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionFails() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	// First writer wins
	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.UpdateStatus(order.Confirmed))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.UpdateStatus(order.Cancelled))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrderFails() {
	ctx := context.Background()
	o := suite.newOrder(1)

	err := suite.repository.Update(ctx, o)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacesItems() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	price, err := kernel.MoneyFromFloat(25)
	suite.Require().NoError(err)
	extra, err := order.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		1, price, kernel.ZeroMoney(),
	)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.AddItem(extra))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(restored.Items(), 2)
	suite.Equal(loaded.TotalAmount().String(), restored.TotalAmount().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByUser() {
	ctx := context.Background()
	first := suite.newOrder(1)
	second := suite.newOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	orders, err := suite.repository.GetAllByUser(ctx, first.UserID())
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].IsEqual(first))

	orders, err = suite.repository.GetAllByUser(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPendingCreatedBefore() {
	ctx := context.Background()
	o := suite.newOrder(1)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stale, err := suite.repository.GetAllPendingCreatedBefore(ctx, time.Now().Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)

	stale, err = suite.repository.GetAllPendingCreatedBefore(ctx, time.Now().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Empty(stale)

	// Confirmed orders are never swept
	suite.Require().NoError(o.UpdateStatus(order.Confirmed))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stale, err = suite.repository.GetAllPendingCreatedBefore(ctx, time.Now().Add(time.Minute))
	suite.Require().NoError(err)
	suite.Empty(stale)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
