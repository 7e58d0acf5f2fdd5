package http

import (
	"errors"
	"net/http"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the auth gateway in front of the service.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server handles HTTP requests for the storefront.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	checkoutHandler          commands.CheckoutCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	requestReturnHandler     commands.RequestReturnCommandHandler
	resolveReturnHandler     commands.ResolveReturnCommandHandler
	updateCartHandler        commands.UpdateCartCommandHandler
	editSessionHandler       commands.EditSessionCommandHandler
	detectLocationHandler    commands.DetectLocationCommandHandler
	validateSessionHandler   commands.ValidateSessionCommandHandler

	// Query handlers
	getOrdersHandler     queries.GetOrdersQueryHandler
	getOrderHandler      queries.GetOrderQueryHandler
	checkDeliveryHandler queries.CheckDeliveryQueryHandler

	// Read-side stores for resources without a dedicated query handler
	carts    ports.CartRepository
	sessions ports.SessionStore
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkoutHandler commands.CheckoutCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	requestReturnHandler commands.RequestReturnCommandHandler,
	resolveReturnHandler commands.ResolveReturnCommandHandler,
	updateCartHandler commands.UpdateCartCommandHandler,
	editSessionHandler commands.EditSessionCommandHandler,
	detectLocationHandler commands.DetectLocationCommandHandler,
	validateSessionHandler commands.ValidateSessionCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	checkDeliveryHandler queries.CheckDeliveryQueryHandler,
	carts ports.CartRepository,
	sessions ports.SessionStore,
) *Server {
	return &Server{
		checkoutHandler:          checkoutHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		requestReturnHandler:     requestReturnHandler,
		resolveReturnHandler:     resolveReturnHandler,
		updateCartHandler:        updateCartHandler,
		editSessionHandler:       editSessionHandler,
		detectLocationHandler:    detectLocationHandler,
		validateSessionHandler:   validateSessionHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderHandler:          getOrderHandler,
		checkDeliveryHandler:     checkDeliveryHandler,
		carts:                    carts,
		sessions:                 sessions,
	}
}

// RegisterRoutes attaches all storefront endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/address/validate", s.ValidateAddress)
	e.GET("/address/check/:pincode", s.CheckPincode)

	e.POST("/orders", s.Checkout)
	e.GET("/orders", s.GetOrders)
	e.GET("/orders/:id", s.GetOrder)
	e.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	e.POST("/orders/:id/return", s.RequestReturn)
	e.PATCH("/orders/:id/return", s.ResolveReturn)

	e.PUT("/cart", s.UpdateCart)
	e.GET("/cart", s.GetCart)

	e.GET("/checkout/session", s.GetSession)
	e.PUT("/checkout/session", s.EditSession)
	e.POST("/checkout/session/detect", s.DetectLocation)
	e.POST("/checkout/session/validate", s.ValidateSession)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// identity extracts the acting user from the gateway headers.
func (s *Server) identity(ctx echo.Context) (kernel.UUID, order.Role, error) {
	rawID := ctx.Request().Header.Get(HeaderUserID)
	if rawID == "" {
		return kernel.UUID{}, order.RoleUnknown, errors.New("missing " + HeaderUserID + " header")
	}

	userID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, errors.New("malformed " + HeaderUserID + " header")
	}

	role, err := order.RoleFromString(ctx.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, errors.New("missing or unknown " + HeaderUserRole + " header")
	}

	return userID, role, nil
}

func (s *Server) unauthorized(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: err.Error(),
	})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps application errors onto HTTP status codes.
func (s *Server) respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, ports.ErrLocationPermissionDenied),
		errors.Is(err, ports.ErrLocationUnavailable),
		errors.Is(err, ports.ErrLocationTimeout):
		// The customer falls back to manual entry; the service is fine.
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
