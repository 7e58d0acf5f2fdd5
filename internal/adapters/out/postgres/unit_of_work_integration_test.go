package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "grocery/internal/adapters/out/postgres"
	"grocery/internal/adapters/out/postgres/cartrepo"
	"grocery/internal/adapters/out/postgres/orderrepo"
	"grocery/internal/core/domain/model/address"
	"grocery/internal/core/domain/model/cart"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &cartrepo.CartDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, carts").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow1.CartRepository(), "First instance should provide cart repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
	suite.NotNil(uow2.CartRepository(), "Second instance should provide cart repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Visible within the transaction
	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Visible after commit using new unit of work
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_CheckoutTransaction verifies the checkout shape: the order
// is created and the cart consumed within the same transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CheckoutTransaction() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	// Seed a cart outside any transaction.
	basket := createTestCart(customerID)
	seedUow := suite.factory.Create()
	err := seedUow.CartRepository().Save(ctx, basket)
	suite.Require().NoError(err)

	// Checkout: add the order, delete the cart, commit.
	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	placedAt := time.Now().UTC()
	placed, err := order.NewOrder(kernel.NewUUID(), customerID, basket.Items(), createTestAddress(), placedAt)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, placed)
	suite.Require().NoError(err)

	err = uow.CartRepository().Delete(ctx, customerID)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// The order exists and the cart is gone.
	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)
	suite.Equal(customerID, retrievedOrder.CustomerID())

	_, err = newUow.CartRepository().Get(ctx, customerID)
	suite.Require().Error(err, "Cart should be consumed by checkout")
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across both repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	// Seed a cart outside any transaction.
	basket := createTestCart(customerID)
	seedUow := suite.factory.Create()
	err := seedUow.CartRepository().Save(ctx, basket)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	placed, err := order.NewOrder(kernel.NewUUID(), customerID, basket.Items(), createTestAddress(), time.Now().UTC())
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, placed)
	suite.Require().NoError(err)

	err = uow.CartRepository().Delete(ctx, customerID)
	suite.Require().NoError(err)

	// Verify visibility within transaction
	_, err = uow.OrderRepository().Get(ctx, placed.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// After rollback the order is gone and the cart is back.
	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, placed.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	retrievedCart, err := newUow.CartRepository().Get(ctx, customerID)
	suite.Require().NoError(err, "Cart should survive the rollback")
	suite.False(retrievedCart.IsEmpty())
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createTestOrder()
	order2 := createTestOrder()

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.OrderRepository().Add(ctx, order1)
	suite.Require().NoError(err)

	err = uow2.OrderRepository().Add(ctx, order2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "UOW1 should see order1")

	_, err = uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")

	_, err = uow2.OrderRepository().Get(ctx, order2.ID())
	suite.Require().NoError(err, "UOW2 should see order2")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify only order1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder()

	// Add order without beginning transaction (should auto-commit)
	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	// Verify with new unit of work instance
	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_ReturnWorkflow runs the full return lifecycle against a
// persisted order within explicit transaction boundaries.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReturnWorkflow() {
	ctx := context.Background()

	// Persist a delivered order.
	items := createTestItems()
	total := 0.0
	for _, item := range items {
		total += item.Subtotal()
	}
	delivered, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), items, createTestAddress(),
		total, time.Now().UTC(), order.Delivered, nil,
	)
	suite.Require().NoError(err)

	seedUow := suite.factory.Create()
	err = seedUow.OrderRepository().Add(ctx, delivered)
	suite.Require().NoError(err)

	// File the return in one transaction.
	uow := suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	loaded, err := uow.OrderRepository().Get(ctx, delivered.ID())
	suite.Require().NoError(err)

	err = loaded.FileReturn(order.ReasonExpired, "past best-before date", nil, time.Now().UTC())
	suite.Require().NoError(err)

	err = uow.OrderRepository().Update(ctx, loaded)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Resolve it in another.
	uow = suite.factory.Create()
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	loaded, err = uow.OrderRepository().Get(ctx, delivered.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Return())

	err = loaded.ResolveReturn(order.ReturnRejected, order.RoleOwner)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Update(ctx, loaded)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Final state.
	finalUow := suite.factory.Create()
	final, err := finalUow.OrderRepository().Get(ctx, delivered.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(final.Return())
	suite.Equal(order.ReturnRejected, final.Return().Status())
}

// createTestItems creates a known-valid pair of order lines for testing purposes.
func createTestItems() []order.Item {
	milk, _ := order.NewItem(kernel.NewUUID(), "Milk 1L", 2, 58.0)
	rice, _ := order.NewItem(kernel.NewUUID(), "Basmati Rice 5kg", 1, 540.0)
	return []order.Item{milk, rice}
}

// createTestAddress creates a valid delivery address for testing purposes.
func createTestAddress() address.Address {
	pincode, _ := kernel.NewPincode("208007")
	addr, _ := address.NewAddress("12 Mall Road", "Kanpur", "Uttar Pradesh", pincode, "", nil)
	return addr
}

// createTestOrder creates a valid pending order for testing purposes.
func createTestOrder() *order.Order {
	testOrder, _ := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		createTestItems(), createTestAddress(), time.Now().UTC(),
	)
	return testOrder
}

// createTestCart creates a filled cart for testing purposes.
func createTestCart(customerID kernel.UUID) *cart.Cart {
	basket, _ := cart.RestoreCart(customerID, createTestItems(), time.Now().UTC())
	return basket
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
