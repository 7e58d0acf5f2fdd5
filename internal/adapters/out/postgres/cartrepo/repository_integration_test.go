package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"grocery/internal/adapters/out/postgres/cartrepo"
	"grocery/internal/core/domain/model/cart"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"

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

// CartRepositoryIntegrationTestSuite provides integration tests for CartRepository
// using PostgreSQL containers to verify database persistence behavior.
type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
	tracker    *MockAggregateTracker
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&cartrepo.CartDTO{}))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carts").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = cartrepo.NewGormCartRepository(suite.db, suite.tracker)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_NewCart_PersistsItems() {
	ctx := context.Background()

	basket := suite.createTestCart(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", basket.CustomerID(), basket).Once()

	suite.Require().NoError(suite.repository.Save(ctx, basket))

	retrieved, err := suite.repository.Get(ctx, basket.CustomerID())
	suite.Require().NoError(err)

	suite.Equal(basket.CustomerID(), retrieved.CustomerID())
	suite.Require().Len(retrieved.Items(), len(basket.Items()))
	for i, item := range retrieved.Items() {
		suite.Equal(basket.Items()[i].ProductRef(), item.ProductRef())
		suite.Equal(basket.Items()[i].Name(), item.Name())
		suite.Equal(basket.Items()[i].Quantity(), item.Quantity())
		suite.InDelta(basket.Items()[i].UnitPrice(), item.UnitPrice(), 0.001)
	}
	suite.WithinDuration(basket.UpdatedAt(), retrieved.UpdatedAt(), time.Millisecond)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_ExistingCart_ReplacesSnapshot() {
	ctx := context.Background()

	basket := suite.createTestCart(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", basket.CustomerID(), basket).Twice()
	suite.Require().NoError(suite.repository.Save(ctx, basket))

	eggs, err := order.NewItem(kernel.NewUUID(), "Eggs 12pk", 1, 84.0)
	suite.Require().NoError(err)
	suite.Require().NoError(basket.ReplaceItems([]order.Item{eggs}, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Save(ctx, basket))

	retrieved, err := suite.repository.Get(ctx, basket.CustomerID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal("Eggs 12pk", retrieved.Items()[0].Name())

	// Still one row per customer.
	var count int64
	suite.Require().NoError(suite.db.Model(&cartrepo.CartDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_EmptyCart_RoundTrips() {
	ctx := context.Background()

	basket, err := cart.NewCart(kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", basket.CustomerID(), basket).Once()

	suite.Require().NoError(suite.repository.Save(ctx, basket))

	retrieved, err := suite.repository.Get(ctx, basket.CustomerID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsEmpty())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestGet_NonExistentCart_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CartRepositoryIntegrationTestSuite) TestDelete_RemovesCartAndIsIdempotent() {
	ctx := context.Background()

	basket := suite.createTestCart(kernel.NewUUID())
	suite.tracker.On("TrackAggregate", basket.CustomerID(), basket).Once()
	suite.Require().NoError(suite.repository.Save(ctx, basket))

	suite.Require().NoError(suite.repository.Delete(ctx, basket.CustomerID()))

	_, err := suite.repository.Get(ctx, basket.CustomerID())
	suite.Require().Error(err)

	// Deleting again is not an error.
	suite.Require().NoError(suite.repository.Delete(ctx, basket.CustomerID()))

	suite.tracker.AssertExpectations(suite.T())
}

// Helper methods

func (suite *CartRepositoryIntegrationTestSuite) createTestCart(customerID kernel.UUID) *cart.Cart {
	milk, err := order.NewItem(kernel.NewUUID(), "Milk 1L", 2, 58.0)
	suite.Require().NoError(err)

	bread, err := order.NewItem(kernel.NewUUID(), "Brown Bread", 1, 45.0)
	suite.Require().NoError(err)

	basket, err := cart.RestoreCart(customerID, []order.Item{milk, bread}, time.Now().UTC())
	suite.Require().NoError(err)
	return basket
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
