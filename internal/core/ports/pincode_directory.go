package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
)

// PincodeDirectory maps postal pincodes to representative coordinates so
// that pincode-only addresses can be checked against the geofence.
type PincodeDirectory interface {
	// Lookup resolves a pincode to its representative coordinates. Returns
	// an error unwrapping to errs.ErrObjectNotFound when the pincode is not
	// in the directory.
	Lookup(ctx context.Context, pincode kernel.Pincode) (kernel.GeoPoint, error)

	// Add records or replaces the coordinates for a pincode.
	Add(ctx context.Context, pincode kernel.Pincode, point kernel.GeoPoint) error
}
