package commands

import (
	"context"
	"errors"
	"time"

	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

const (
	// positionTimeout bounds how long a single fix may take.
	positionTimeout = 15 * time.Second
	// positionMaxAge allows a cached device fix of up to a minute.
	positionMaxAge = 60 * time.Second
)

// DetectLocationCommandHandler auto-fills the checkout session from the
// device position. The input version is captured before the slow I/O starts;
// manual edits made in the meantime win over the detected fields when the
// result is merged. After the merge the session is re-validated against the
// geofence.
//
// Acquisition failures (permission denied, unavailable, timeout) are
// returned as classified errors; the caller falls back to manual entry and
// never retries automatically.
type DetectLocationCommandHandler struct {
	sessions  ports.SessionStore
	locations ports.LocationProvider
	geocoder  ports.ReverseGeocoder
	validator ValidateSessionCommandHandler
}

// NewDetectLocationCommandHandler creates a handler for location detection.
func NewDetectLocationCommandHandler(
	sessions ports.SessionStore,
	locations ports.LocationProvider,
	geocoder ports.ReverseGeocoder,
	validator ValidateSessionCommandHandler,
) DetectLocationCommandHandler {
	return DetectLocationCommandHandler{
		sessions:  sessions,
		locations: locations,
		geocoder:  geocoder,
		validator: validator,
	}
}

// Handle acquires a position fix, reverse geocodes it, merges the result
// into the session, and returns the recorded eligibility verdict.
func (h *DetectLocationCommandHandler) Handle(
	ctx context.Context,
	cmd DetectLocationCommand,
) (EligibilityResult, error) {
	if err := cmd.Validate(); err != nil {
		return EligibilityResult{}, err
	}

	session, err := h.sessions.Get(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		session, err = checkout.NewSession(cmd.CustomerID(), time.Now())
		if err == nil {
			err = h.sessions.Save(ctx, session)
		}
	}
	if err != nil {
		return EligibilityResult{}, err
	}

	baseVersion := session.Version()

	point, err := h.locations.CurrentPosition(ctx, ports.PositionOptions{
		HighAccuracy: cmd.HighAccuracy(),
		Timeout:      positionTimeout,
		MaximumAge:   positionMaxAge,
	})
	if err != nil {
		return EligibilityResult{}, err
	}

	detected, err := h.geocoder.Reverse(ctx, point)
	if err != nil {
		return EligibilityResult{}, err
	}

	// Re-read: the customer may have edited the draft during the slow I/O.
	session, err = h.sessions.Get(ctx, cmd.CustomerID())
	if err != nil {
		return EligibilityResult{}, err
	}

	if err = session.ApplyDetectedLocation(detected, baseVersion, time.Now()); err != nil {
		return EligibilityResult{}, err
	}

	if err = h.sessions.Save(ctx, session); err != nil {
		return EligibilityResult{}, err
	}

	validateCmd, err := NewValidateSessionCommand(cmd.CustomerID())
	if err != nil {
		return EligibilityResult{}, err
	}

	return h.validator.Handle(ctx, validateCmd)
}
