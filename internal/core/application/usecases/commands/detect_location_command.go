package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var ErrDetectLocationCommandIsNotConstructed = errors.New(
	"DetectLocationCommand must be created via NewDetectLocationCommand constructor",
)

// DetectLocationCommand fills the checkout session from the device's
// current position: one fix, reverse geocoded, merged into the draft, and
// validated against the geofence.
type DetectLocationCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	highAccuracy bool

	guard guard.ConstructorGuard
}

// NewDetectLocationCommand creates a location-detection command.
func NewDetectLocationCommand(customerID kernel.UUID, highAccuracy bool) (DetectLocationCommand, error) {
	cmd := DetectLocationCommand{
		highAccuracy: highAccuracy,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setCustomerID(customerID); err != nil {
		return DetectLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DetectLocationCommand) Validate() error {
	return c.guard.Validate(ErrDetectLocationCommandIsNotConstructed)
}

// CustomerID returns the session owner.
func (c DetectLocationCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// HighAccuracy reports whether the device should produce its best fix.
func (c DetectLocationCommand) HighAccuracy() bool {
	return c.highAccuracy
}

func (c *DetectLocationCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
