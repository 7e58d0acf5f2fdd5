package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var ErrValidateSessionCommandIsNotConstructed = errors.New(
	"ValidateSessionCommand must be created via NewValidateSessionCommand constructor",
)

// ValidateSessionCommand checks the session's current location input against
// the delivery geofence and records the verdict on the session.
type ValidateSessionCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewValidateSessionCommand creates a session-validation command.
func NewValidateSessionCommand(customerID kernel.UUID) (ValidateSessionCommand, error) {
	cmd := ValidateSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCustomerID(customerID); err != nil {
		return ValidateSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateSessionCommand) Validate() error {
	return c.guard.Validate(ErrValidateSessionCommandIsNotConstructed)
}

// CustomerID returns the session owner.
func (c ValidateSessionCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *ValidateSessionCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
