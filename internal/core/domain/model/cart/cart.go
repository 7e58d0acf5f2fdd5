// Package cart provides the customer's cart snapshot: the lines a checkout
// turns into an order. The storefront keeps one cart per customer; placing
// an order consumes it.
package cart

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"
)

// ErrCartIsNotConstructed is returned when a Cart instance was not created
// through NewCart or RestoreCart.
var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")

// Cart holds the lines a customer intends to order. It may be empty; an
// empty cart simply cannot be checked out.
type Cart struct {
	customerID kernel.UUID
	items      []order.Item
	updatedAt  time.Time

	isConstructed bool
}

// NewCart creates an empty cart for a customer.
func NewCart(customerID kernel.UUID, now time.Time) (*Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}

	return &Cart{
		customerID:    customerID,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence.
func RestoreCart(customerID kernel.UUID, items []order.Item, updatedAt time.Time) (*Cart, error) {
	c, err := NewCart(customerID, updatedAt)
	if err != nil {
		return nil, err
	}

	if err := c.ReplaceItems(items, updatedAt); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Cart was created through a constructor.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// CustomerID returns the owner of the cart.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []order.Item {
	out := make([]order.Item, len(c.items))
	copy(out, c.items)
	return out
}

// UpdatedAt returns the time of the last modification.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Total returns the sum of line subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ReplaceItems swaps the cart contents for the given lines. An empty slice
// clears the cart. Every line must be a valid item.
func (c *Cart) ReplaceItems(items []order.Item, now time.Time) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	c.items = make([]order.Item, len(items))
	copy(c.items, items)
	c.updatedAt = now
	return nil
}

// Clear removes every line, typically after a successful checkout.
func (c *Cart) Clear(now time.Time) {
	c.items = nil
	c.updatedAt = now
}
