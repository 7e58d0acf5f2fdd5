package pincoderepo_test

import (
	"context"
	"testing"
	"time"

	"grocery/internal/adapters/out/postgres/pincoderepo"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PincodeDirectoryIntegrationTestSuite provides integration tests for the
// pincode directory using PostgreSQL containers.
type PincodeDirectoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	directory *pincoderepo.GormPincodeDirectory
}

func (suite *PincodeDirectoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&pincoderepo.PincodeDTO{}))
}

func (suite *PincodeDirectoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pincodes").Error)
	suite.directory = pincoderepo.NewGormPincodeDirectory(suite.db)
}

func (suite *PincodeDirectoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PincodeDirectoryIntegrationTestSuite) TestAddAndLookup_RoundTrip() {
	ctx := context.Background()

	pincode, err := kernel.NewPincode("208007")
	suite.Require().NoError(err)
	point, err := kernel.NewGeoPoint(26.4499, 80.3319)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.directory.Add(ctx, pincode, point))

	resolved, err := suite.directory.Lookup(ctx, pincode)
	suite.Require().NoError(err)
	suite.InDelta(26.4499, resolved.Latitude(), 0.0001)
	suite.InDelta(80.3319, resolved.Longitude(), 0.0001)
}

func (suite *PincodeDirectoryIntegrationTestSuite) TestAdd_ExistingPincode_ReplacesCoordinates() {
	ctx := context.Background()

	pincode, err := kernel.NewPincode("226001")
	suite.Require().NoError(err)

	initial, err := kernel.NewGeoPoint(26.85, 80.95)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.directory.Add(ctx, pincode, initial))

	corrected, err := kernel.NewGeoPoint(26.8467, 80.9462)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.directory.Add(ctx, pincode, corrected))

	resolved, err := suite.directory.Lookup(ctx, pincode)
	suite.Require().NoError(err)
	suite.InDelta(26.8467, resolved.Latitude(), 0.0001)
	suite.InDelta(80.9462, resolved.Longitude(), 0.0001)

	var count int64
	suite.Require().NoError(suite.db.Model(&pincoderepo.PincodeDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *PincodeDirectoryIntegrationTestSuite) TestLookup_UnknownPincode_ReturnsNotFoundError() {
	ctx := context.Background()

	pincode, err := kernel.NewPincode("999999")
	suite.Require().NoError(err)

	_, err = suite.directory.Lookup(ctx, pincode)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func TestPincodeDirectoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PincodeDirectoryIntegrationTestSuite))
}
