package services

import (
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

// UnknownDistanceKm is reported instead of a real distance when a location
// could not be resolved to coordinates, for example a pincode missing from
// the directory.
const UnknownDistanceKm = -1

// Verdict is the outcome of a geofence evaluation.
type Verdict struct {
	// Eligible is true when the candidate lies within the service radius,
	// boundary included.
	Eligible bool
	// DistanceKm is the great-circle distance from the service area base.
	// It is always reported, including for ineligible candidates, or set to
	// UnknownDistanceKm when no coordinates were available.
	DistanceKm float64
}

// IneligibleUnknown is the verdict for a candidate whose coordinates could
// not be resolved at all. Unresolvable locations are never eligible.
func IneligibleUnknown() Verdict {
	return Verdict{Eligible: false, DistanceKm: UnknownDistanceKm}
}

// Geofence is a domain service deciding delivery eligibility: a candidate
// location is deliverable when its haversine distance from the service area
// base does not exceed the service radius.
//
// Example:
//
//	base, _ := kernel.NewGeoPoint(26.4499, 80.3319)
//	fence, _ := services.NewGeofence(base, 5)
//	verdict, _ := fence.Evaluate(candidate)
//	if verdict.Eligible {
//	    // candidate is within 5 km of the base
//	}
type Geofence struct {
	base     kernel.GeoPoint
	radiusKm float64
}

// NewGeofence creates a geofence around base with the given radius in
// kilometers. The radius must be positive.
func NewGeofence(base kernel.GeoPoint, radiusKm float64) (Geofence, error) {
	if err := base.Validate(); err != nil {
		return Geofence{}, err
	}

	if radiusKm <= 0 {
		return Geofence{}, errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, "+inf")
	}

	return Geofence{base: base, radiusKm: radiusKm}, nil
}

// Base returns the center of the service area.
func (g Geofence) Base() kernel.GeoPoint {
	return g.base
}

// RadiusKm returns the service radius in kilometers.
func (g Geofence) RadiusKm() float64 {
	return g.radiusKm
}

// Evaluate checks a candidate location against the fence. The distance is
// computed and reported even when the candidate is out of range, so callers
// can tell the customer how far off they are.
func (g Geofence) Evaluate(candidate kernel.GeoPoint) (Verdict, error) {
	distance, err := g.base.DistanceKm(candidate)
	if err != nil {
		return Verdict{}, err
	}

	return Verdict{
		Eligible:   distance <= g.radiusKm,
		DistanceKm: distance,
	}, nil
}
