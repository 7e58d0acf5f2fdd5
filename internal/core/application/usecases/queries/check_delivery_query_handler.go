package queries

import (
	"context"
	"errors"

	"grocery/internal/core/domain/services"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// CheckDeliveryQueryHandler evaluates delivery eligibility against the
// configured geofence. Pincode-only input is resolved through the pincode
// directory first; an unknown pincode is reported as ineligible rather than
// an error.
type CheckDeliveryQueryHandler struct {
	directory ports.PincodeDirectory
	fence     services.Geofence
}

// NewCheckDeliveryQueryHandler creates a handler for delivery eligibility
// queries.
func NewCheckDeliveryQueryHandler(
	directory ports.PincodeDirectory,
	fence services.Geofence,
) CheckDeliveryQueryHandler {
	return CheckDeliveryQueryHandler{
		directory: directory,
		fence:     fence,
	}
}

// Handle executes the eligibility check.
func (h CheckDeliveryQueryHandler) Handle(
	ctx context.Context,
	query CheckDeliveryQuery,
) (CheckDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckDeliveryQueryResponse{}, err
	}

	candidate := query.Point()
	if candidate == nil {
		resolved, err := h.directory.Lookup(ctx, *query.Pincode())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				verdict := services.IneligibleUnknown()
				return CheckDeliveryQueryResponse{
					Eligible:   verdict.Eligible,
					DistanceKm: verdict.DistanceKm,
				}, nil
			}
			return CheckDeliveryQueryResponse{}, err
		}
		candidate = &resolved
	}

	verdict, err := h.fence.Evaluate(*candidate)
	if err != nil {
		return CheckDeliveryQueryResponse{}, err
	}

	return CheckDeliveryQueryResponse{
		Eligible:   verdict.Eligible,
		DistanceKm: verdict.DistanceKm,
	}, nil
}
