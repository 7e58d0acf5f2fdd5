package cmd

import (
	"context"
	"log/slog"

	httpin "grocery/internal/adapters/in/http"
	"grocery/internal/adapters/out/geoagent"
	"grocery/internal/adapters/out/memstore"
	"grocery/internal/adapters/out/nominatim"
	"grocery/internal/adapters/out/notify"
	"grocery/internal/adapters/out/postgres"
	"grocery/internal/adapters/out/postgres/pincoderepo"
	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
	"grocery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	sessions  *memstore.SessionStore
	outbox    *notify.Outbox
	directory ports.PincodeDirectory
	fence     services.Geofence
	locations ports.LocationProvider
	geocoder  ports.ReverseGeocoder
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	base, err := kernel.NewGeoPoint(configs.GeofenceBaseLat, configs.GeofenceBaseLon)
	if err != nil {
		return CompositionRoot{}, err
	}

	fence, err := services.NewGeofence(base, configs.GeofenceRadiusKm)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		sessions:   memstore.NewSessionStore(),
		outbox:     notify.NewOutbox(),
		directory:  pincoderepo.NewGormPincodeDirectory(gormDB),
		fence:      fence,
		locations:  geoagent.NewClient(configs.GeoAgentURL, nil),
		geocoder:   nominatim.NewClient(configs.NominatimBaseURL),
	}, nil
}

// SeedPincodeDirectory ensures the service-area base pincode resolves to the
// geofence base, so pincode-only checks work on a fresh database.
func (c *CompositionRoot) SeedPincodeDirectory(ctx context.Context, configs Config) error {
	pin, err := kernel.NewPincode(configs.GeofenceBasePincode)
	if err != nil {
		return err
	}

	base, err := kernel.NewGeoPoint(configs.GeofenceBaseLat, configs.GeofenceBaseLon)
	if err != nil {
		return err
	}

	return c.directory.Add(ctx, pin, base)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.sessions, c.outbox)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.outbox)
}

func (c *CompositionRoot) CreateRequestReturnCommandHandler() commands.RequestReturnCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestReturnCommandHandler(f, c.outbox)
}

func (c *CompositionRoot) CreateResolveReturnCommandHandler() commands.ResolveReturnCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveReturnCommandHandler(f, c.outbox)
}

func (c *CompositionRoot) CreateUpdateCartCommandHandler() commands.UpdateCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCartCommandHandler(f)
}

func (c *CompositionRoot) CreateEditSessionCommandHandler() commands.EditSessionCommandHandler {
	return commands.NewEditSessionCommandHandler(c.sessions)
}

func (c *CompositionRoot) CreateValidateSessionCommandHandler() commands.ValidateSessionCommandHandler {
	return commands.NewValidateSessionCommandHandler(c.sessions, c.directory, c.fence)
}

func (c *CompositionRoot) CreateDetectLocationCommandHandler() commands.DetectLocationCommandHandler {
	return commands.NewDetectLocationCommandHandler(
		c.sessions,
		c.locations,
		c.geocoder,
		c.CreateValidateSessionCommandHandler(),
	)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCheckDeliveryQueryHandler() queries.CheckDeliveryQueryHandler {
	return queries.NewCheckDeliveryQueryHandler(c.directory, c.fence)
}

// CreateCartReader exposes the cart store outside a transaction for the
// read-only cart endpoint.
func (c *CompositionRoot) CreateCartReader() ports.CartRepository {
	return c.uowFactory.Create().CartRepository()
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.outbox, c.sessions, logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCheckoutCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateRequestReturnCommandHandler(),
		c.CreateResolveReturnCommandHandler(),
		c.CreateUpdateCartCommandHandler(),
		c.CreateEditSessionCommandHandler(),
		c.CreateDetectLocationCommandHandler(),
		c.CreateValidateSessionCommandHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateCheckDeliveryQueryHandler(),
		c.CreateCartReader(),
		c.sessions,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}
