package http

import (
	"math"
	"net/http"
	"time"

	"grocery/internal/core/application/usecases/commands"
	"grocery/internal/core/application/usecases/queries"
	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type validateAddressRequest struct {
	Pincode   string   `json:"pincode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type deliveryCheckResponse struct {
	Eligible   bool    `json:"eligible"`
	DistanceKm float64 `json:"distance_km"`
}

type editSessionRequest struct {
	Street           *string  `json:"street"`
	City             *string  `json:"city"`
	State            *string  `json:"state"`
	Landmark         *string  `json:"landmark"`
	Pincode          *string  `json:"pincode"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	ClearCoordinates bool     `json:"clear_coordinates"`
}

type detectLocationRequest struct {
	HighAccuracy bool `json:"high_accuracy"`
}

type sessionResponse struct {
	Street      string    `json:"street"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Landmark    string    `json:"landmark,omitempty"`
	Pincode     string    `json:"pincode,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Eligibility string    `json:"eligibility"`
	DistanceKm  *float64  `json:"distance_km,omitempty"`
	Version     uint64    `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type eligibilityResponse struct {
	Eligible   bool    `json:"eligible"`
	DistanceKm float64 `json:"distance_km"`
	Applied    bool    `json:"applied"`
}

// ValidateAddress handles POST /address/validate - checks a pincode and/or
// coordinate pair against the service area.
func (s *Server) ValidateAddress(ctx echo.Context) error {
	var request validateAddressRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	var pincode *kernel.Pincode
	if request.Pincode != "" {
		pin, err := kernel.NewPincode(request.Pincode)
		if err != nil {
			return s.respondError(ctx, err)
		}
		pincode = &pin
	}

	var point *kernel.GeoPoint
	if request.Latitude != nil || request.Longitude != nil {
		if request.Latitude == nil || request.Longitude == nil {
			return s.badRequest(ctx, "latitude and longitude must be provided together")
		}

		p, err := kernel.NewGeoPoint(*request.Latitude, *request.Longitude)
		if err != nil {
			return s.respondError(ctx, err)
		}
		point = &p
	}

	return s.checkDelivery(ctx, pincode, point)
}

// CheckPincode handles GET /address/check/:pincode - pincode-only service
// area check.
func (s *Server) CheckPincode(ctx echo.Context) error {
	pin, err := kernel.NewPincode(ctx.Param("pincode"))
	if err != nil {
		return s.respondError(ctx, err)
	}

	return s.checkDelivery(ctx, &pin, nil)
}

func (s *Server) checkDelivery(ctx echo.Context, pincode *kernel.Pincode, point *kernel.GeoPoint) error {
	query, err := queries.NewCheckDeliveryQuery(pincode, point)
	if err != nil {
		return s.respondError(ctx, err)
	}

	verdict, err := s.checkDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, deliveryCheckResponse{
		Eligible:   verdict.Eligible,
		DistanceKm: roundKm(verdict.DistanceKm),
	})
}

// GetSession handles GET /checkout/session - the customer's current draft.
func (s *Server) GetSession(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	session, err := s.sessions.Get(ctx.Request().Context(), userID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSessionResponse(session))
}

// EditSession handles PUT /checkout/session - manual address edits. The
// session is created on first touch and returned after the edit.
func (s *Server) EditSession(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	var request editSessionRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewEditSessionCommand(userID, commands.SessionEdits{
		Street:           request.Street,
		City:             request.City,
		State:            request.State,
		Landmark:         request.Landmark,
		Pincode:          request.Pincode,
		Latitude:         request.Latitude,
		Longitude:        request.Longitude,
		ClearCoordinates: request.ClearCoordinates,
	})
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.editSessionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	session, err := s.sessions.Get(ctx.Request().Context(), userID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSessionResponse(session))
}

// DetectLocation handles POST /checkout/session/detect - acquires a device
// fix, reverse geocodes it into the session, and reports the verdict.
func (s *Server) DetectLocation(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	var request detectLocationRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewDetectLocationCommand(userID, request.HighAccuracy)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.detectLocationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toEligibilityResponse(result))
}

// ValidateSession handles POST /checkout/session/validate - evaluates the
// session's current location input against the service area.
func (s *Server) ValidateSession(ctx echo.Context) error {
	userID, _, err := s.identity(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	cmd, err := commands.NewValidateSessionCommand(userID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	result, err := s.validateSessionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toEligibilityResponse(result))
}

func toSessionResponse(session *checkout.Session) sessionResponse {
	response := sessionResponse{
		Street:      session.Street(),
		City:        session.City(),
		State:       session.State(),
		Landmark:    session.Landmark(),
		Pincode:     session.PincodeInput(),
		Eligibility: session.EligibilityState().String(),
		Version:     session.Version(),
		UpdatedAt:   session.UpdatedAt(),
	}

	if coords := session.Coordinates(); coords != nil {
		lat := coords.Latitude()
		lon := coords.Longitude()
		response.Latitude = &lat
		response.Longitude = &lon
	}

	if session.EligibilityState() != checkout.EligibilityUnknown {
		distance := roundKm(session.DistanceKm())
		response.DistanceKm = &distance
	}

	return response
}

func toEligibilityResponse(result commands.EligibilityResult) eligibilityResponse {
	return eligibilityResponse{
		Eligible:   result.Eligible,
		DistanceKm: roundKm(result.DistanceKm),
		Applied:    result.Applied,
	}
}

// roundKm rounds a distance for presentation. The unknown-distance marker
// passes through untouched.
func roundKm(km float64) float64 {
	if km < 0 {
		return km
	}
	return math.Round(km*100) / 100
}
