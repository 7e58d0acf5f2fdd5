package commands

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

var ErrEditSessionCommandIsNotConstructed = errors.New(
	"EditSessionCommand must be created via NewEditSessionCommand constructor",
)

// SessionEdits carries the address fields a customer changed. Nil pointers
// mean "leave the field alone"; latitude and longitude travel together.
type SessionEdits struct {
	Street   *string
	City     *string
	State    *string
	Landmark *string
	Pincode  *string

	Latitude         *float64
	Longitude        *float64
	ClearCoordinates bool
}

// EditSessionCommand applies manual edits to a customer's checkout session,
// creating the session on first touch.
type EditSessionCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	edits      SessionEdits

	guard guard.ConstructorGuard
}

// NewEditSessionCommand creates a session-edit command. At least one edit
// must be present, and a latitude without a longitude (or vice versa) is
// rejected.
func NewEditSessionCommand(customerID kernel.UUID, edits SessionEdits) (EditSessionCommand, error) {
	cmd := EditSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setEdits(edits),
	); err != nil {
		return EditSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EditSessionCommand) Validate() error {
	return c.guard.Validate(ErrEditSessionCommandIsNotConstructed)
}

// CustomerID returns the session owner.
func (c EditSessionCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Edits returns the field changes to apply.
func (c EditSessionCommand) Edits() SessionEdits {
	return c.edits
}

func (c *EditSessionCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *EditSessionCommand) setEdits(edits SessionEdits) error {
	if (edits.Latitude == nil) != (edits.Longitude == nil) {
		return errs.NewValueIsInvalidErrorWithCause("coordinates",
			fmt.Errorf("latitude and longitude must be provided together"))
	}

	if edits.Street == nil && edits.City == nil && edits.State == nil &&
		edits.Landmark == nil && edits.Pincode == nil &&
		edits.Latitude == nil && !edits.ClearCoordinates {
		return errs.NewValueIsRequiredError("edits")
	}

	c.edits = edits
	return nil
}
