package commands

import (
	"context"
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// EligibilityResult is the outcome of a session validation.
type EligibilityResult struct {
	// Eligible is true when the session's location lies inside the service
	// area.
	Eligible bool
	// DistanceKm is the distance from the service area base, or
	// services.UnknownDistanceKm when the location could not be resolved.
	DistanceKm float64
	// Applied is false when the session's input changed while the check was
	// running and the verdict was therefore discarded.
	Applied bool
}

// ValidateSessionCommandHandler evaluates the session's location input
// against the geofence. Coordinates are checked directly; a pincode alone is
// resolved through the directory first, and a pincode the directory does not
// know yields an ineligible verdict with an unknown distance.
//
// The verdict is tagged with the input version it was computed for; if the
// customer edited the location in the meantime the verdict is discarded and
// the session stays unknown.
type ValidateSessionCommandHandler struct {
	sessions  ports.SessionStore
	directory ports.PincodeDirectory
	fence     services.Geofence
}

// NewValidateSessionCommandHandler creates a handler for session validation.
func NewValidateSessionCommandHandler(
	sessions ports.SessionStore,
	directory ports.PincodeDirectory,
	fence services.Geofence,
) ValidateSessionCommandHandler {
	return ValidateSessionCommandHandler{
		sessions:  sessions,
		directory: directory,
		fence:     fence,
	}
}

// Handle computes and records the delivery verdict for the session's
// current location input.
func (h *ValidateSessionCommandHandler) Handle(
	ctx context.Context,
	cmd ValidateSessionCommand,
) (EligibilityResult, error) {
	if err := cmd.Validate(); err != nil {
		return EligibilityResult{}, err
	}

	session, err := h.sessions.Get(ctx, cmd.CustomerID())
	if err != nil {
		return EligibilityResult{}, err
	}

	pincode, coords, version, err := session.EligibilityInput()
	if err != nil {
		return EligibilityResult{}, err
	}

	verdict, err := h.evaluate(ctx, pincode, coords)
	if err != nil {
		return EligibilityResult{}, err
	}

	applied := session.ApplyEligibility(verdict.Eligible, verdict.DistanceKm, version, time.Now())
	if applied {
		if err = h.sessions.Save(ctx, session); err != nil {
			return EligibilityResult{}, err
		}
	}

	return EligibilityResult{
		Eligible:   verdict.Eligible,
		DistanceKm: verdict.DistanceKm,
		Applied:    applied,
	}, nil
}

// evaluate prefers coordinates over the pincode: a device fix is more
// precise than a directory centroid.
func (h *ValidateSessionCommandHandler) evaluate(
	ctx context.Context,
	pincode string,
	coords *kernel.GeoPoint,
) (services.Verdict, error) {
	if coords != nil {
		return h.fence.Evaluate(*coords)
	}

	pin, err := kernel.NewPincode(pincode)
	if err != nil {
		return services.Verdict{}, err
	}

	point, err := h.directory.Lookup(ctx, pin)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return services.IneligibleUnknown(), nil
	}
	if err != nil {
		return services.Verdict{}, err
	}

	return h.fence.Evaluate(point)
}
