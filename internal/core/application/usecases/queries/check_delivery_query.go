package queries

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

var (
	ErrCheckDeliveryQueryIsNotConstructed = errors.New(
		"CheckDeliveryQuery must be created via NewCheckDeliveryQuery constructor",
	)
)

// CheckDeliveryQuery asks whether a location can be delivered to, without
// touching any checkout session. It carries a pincode, coordinates, or
// both; when both are present the coordinates win, being more precise than
// a directory centroid.
type CheckDeliveryQuery struct {
	pincode *kernel.Pincode
	point   *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCheckDeliveryQuery creates a delivery eligibility query. At least one
// of pincode and point must be provided.
func NewCheckDeliveryQuery(pincode *kernel.Pincode, point *kernel.GeoPoint) (CheckDeliveryQuery, error) {
	if pincode == nil && point == nil {
		return CheckDeliveryQuery{}, errs.NewValueIsRequiredError("pincode or coordinates")
	}

	if pincode != nil {
		if err := pincode.Validate(); err != nil {
			return CheckDeliveryQuery{}, err
		}
	}
	if point != nil {
		if err := point.Validate(); err != nil {
			return CheckDeliveryQuery{}, err
		}
	}

	return CheckDeliveryQuery{
		pincode: pincode,
		point:   point,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CheckDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrCheckDeliveryQueryIsNotConstructed)
}

// Pincode returns the pincode input, or nil.
func (q CheckDeliveryQuery) Pincode() *kernel.Pincode {
	return q.pincode
}

// Point returns the coordinate input, or nil.
func (q CheckDeliveryQuery) Point() *kernel.GeoPoint {
	return q.point
}

// CheckDeliveryQueryResponse reports the eligibility verdict. DistanceKm is
// -1 when the pincode was not in the directory.
type CheckDeliveryQueryResponse struct {
	Eligible   bool
	DistanceKm float64
}
