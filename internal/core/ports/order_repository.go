// Package ports defines the outbound contracts of the storefront core.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The store is the single source of truth for lifecycle state: a transition
// is final only once Update has been committed.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// status and any attached return request.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllForCustomer retrieves every order a customer has placed, newest
	// first. Used for the customer's order history.
	GetAllForCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAll retrieves every order in the store, newest first. Used for the
	// owner's dashboard.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
