package ports

import (
	"context"
	"errors"
	"time"

	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/domain/model/kernel"
)

// Location acquisition failures, classified so callers can show the customer
// a precise message. All of them mean the same thing operationally: fall
// back to manual address entry, no automatic retry.
var (
	// ErrLocationPermissionDenied means the device refused to share its
	// position.
	ErrLocationPermissionDenied = errors.New("location permission denied")
	// ErrLocationUnavailable means the device could not produce a fix.
	ErrLocationUnavailable = errors.New("location position unavailable")
	// ErrLocationTimeout means no fix arrived within the configured timeout.
	ErrLocationTimeout = errors.New("location request timed out")
)

// PositionOptions tune a single position fix request.
type PositionOptions struct {
	// HighAccuracy requests the best fix the device can produce, at the
	// cost of latency and power.
	HighAccuracy bool
	// Timeout bounds how long to wait for a fix.
	Timeout time.Duration
	// MaximumAge allows a cached fix no older than this to be returned
	// instead of a fresh one.
	MaximumAge time.Duration
}

// LocationProvider acquires the device's current position. One call, one
// fix; there is no watch/subscription mode.
type LocationProvider interface {
	// CurrentPosition returns a single position fix. Failures unwrap to one
	// of the classified location errors above, or to neither for unknown
	// failures.
	CurrentPosition(ctx context.Context, opts PositionOptions) (kernel.GeoPoint, error)
}

// ReverseGeocoder turns coordinates into address fields.
type ReverseGeocoder interface {
	// Reverse resolves a point to whatever address fields the geocoder
	// knows. On timeout or network failure it degrades to a result carrying
	// only the input coordinates; other failures are returned as errors.
	Reverse(ctx context.Context, point kernel.GeoPoint) (checkout.DetectedLocation, error)
}
