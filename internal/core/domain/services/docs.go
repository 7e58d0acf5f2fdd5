// Package services provides domain services that implement business logic
// spanning multiple value objects and aggregates.
//
// The package includes:
//   - Geofence: decides delivery eligibility from the great-circle distance
//     between a candidate location and the service area base
package services
