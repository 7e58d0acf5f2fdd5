package ports

import (
	"context"

	"grocery/internal/core/domain/model/cart"
	"grocery/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart snapshots. Each
// customer has at most one cart; Save upserts it.
type CartRepository interface {
	// Save persists the cart, replacing any previous snapshot for the same
	// customer.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// Get retrieves the customer's cart. Returns an error unwrapping to
	// errs.ErrObjectNotFound when no cart exists.
	Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Delete removes the customer's cart, typically after checkout.
	// Deleting an absent cart is not an error.
	Delete(ctx context.Context, customerID kernel.UUID) error
}
