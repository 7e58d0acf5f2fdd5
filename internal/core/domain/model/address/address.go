// Package address provides the postal address value object embedded in
// orders. An Address is a snapshot: once attached to an order at creation it
// is never re-validated or changed.
package address

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value
// Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is an immutable postal address. Street, city, and a complete
// 6-digit pincode are required; state and landmark are optional, and
// coordinates are present only when the address was obtained via device
// geolocation or successful reverse geocoding.
type Address struct { //nolint:recvcheck //using for validation
	street      string
	city        string
	state       string
	pincode     kernel.Pincode
	landmark    string
	coordinates *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. coordinates may be nil.
func NewAddress(
	street, city, state string,
	pincode kernel.Pincode,
	landmark string,
	coordinates *kernel.GeoPoint,
) (Address, error) {
	addr := Address{
		state:    state,
		landmark: landmark,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setStreet(street),
		addr.setCity(city),
		addr.setPincode(pincode),
		addr.setCoordinates(coordinates),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks that the Address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line.
func (a Address) Street() string {
	return a.street
}

// City returns the city name.
func (a Address) City() string {
	return a.city
}

// State returns the state or region, possibly empty.
func (a Address) State() string {
	return a.state
}

// Pincode returns the 6-digit postal code.
func (a Address) Pincode() kernel.Pincode {
	return a.pincode
}

// Landmark returns the optional landmark hint.
func (a Address) Landmark() string {
	return a.landmark
}

// Coordinates returns the geographic coordinates, or nil when the address
// was entered manually without a location fix.
func (a Address) Coordinates() *kernel.GeoPoint {
	if a.coordinates == nil {
		return nil
	}
	c := *a.coordinates
	return &c
}

// FullAddress renders the single-line display form used on order documents.
func (a Address) FullAddress() string {
	if a.state == "" {
		return fmt.Sprintf("%s, %s - %s", a.street, a.city, a.pincode)
	}
	return fmt.Sprintf("%s, %s, %s - %s", a.street, a.city, a.state, a.pincode)
}

func (a *Address) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPincode(pincode kernel.Pincode) error {
	if err := pincode.Validate(); err != nil {
		return err
	}
	a.pincode = pincode
	return nil
}

func (a *Address) setCoordinates(coordinates *kernel.GeoPoint) error {
	if coordinates == nil {
		return nil
	}
	if err := coordinates.Validate(); err != nil {
		return err
	}
	c := *coordinates
	a.coordinates = &c
	return nil
}
