package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

var ErrUpdateCartCommandIsNotConstructed = errors.New(
	"UpdateCartCommand must be created via NewUpdateCartCommand constructor",
)

// UpdateCartCommand replaces a customer's cart snapshot with the given
// lines. An empty line set clears the cart.
type UpdateCartCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	items      []order.Item

	guard guard.ConstructorGuard
}

// NewUpdateCartCommand creates a command to replace the customer's cart.
// Every line must be a valid order item; an empty slice is allowed.
func NewUpdateCartCommand(customerID kernel.UUID, items []order.Item) (UpdateCartCommand, error) {
	cmd := UpdateCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return UpdateCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c UpdateCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns a copy of the cart lines.
func (c UpdateCartCommand) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *UpdateCartCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *UpdateCartCommand) setItems(items []order.Item) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	return nil
}
