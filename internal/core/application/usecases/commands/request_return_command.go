package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

var ErrRequestReturnCommandIsNotConstructed = errors.New(
	"RequestReturnCommand must be created via NewRequestReturnCommand constructor",
)

// RequestReturnCommand files a return/refund request against a delivered
// order. The item selection is optional; an empty selection means the whole
// order.
type RequestReturnCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	customerID  kernel.UUID
	reason      order.ReturnReason
	description string
	items       []kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestReturnCommand creates a return-filing command. The reason must
// come from the fixed vocabulary; the description is free-form and optional.
func NewRequestReturnCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	reason order.ReturnReason,
	description string,
	items []kernel.UUID,
) (RequestReturnCommand, error) {
	cmd := RequestReturnCommand{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setReason(reason),
		cmd.setItems(items),
	); err != nil {
		return RequestReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestReturnCommand) Validate() error {
	return c.guard.Validate(ErrRequestReturnCommandIsNotConstructed)
}

// OrderID returns the order the return is filed against.
func (c RequestReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the customer filing the return.
func (c RequestReturnCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Reason returns the return reason.
func (c RequestReturnCommand) Reason() order.ReturnReason {
	return c.reason
}

// Description returns the free-form description, possibly empty.
func (c RequestReturnCommand) Description() string {
	return c.description
}

// Items returns a copy of the item selection, possibly empty.
func (c RequestReturnCommand) Items() []kernel.UUID {
	out := make([]kernel.UUID, len(c.items))
	copy(out, c.items)
	return out
}

func (c *RequestReturnCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestReturnCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *RequestReturnCommand) setReason(reason order.ReturnReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}

	c.reason = reason
	return nil
}

func (c *RequestReturnCommand) setItems(items []kernel.UUID) error {
	for _, id := range items {
		if err := id.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]kernel.UUID, len(items))
	copy(c.items, items)
	return nil
}
