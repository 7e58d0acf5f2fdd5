// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves order summaries, newest first. The owner-facing
// form lists every order in the system; the customer-facing form restricts
// the listing to one customer's orders.
//
// Example:
//
//	query := NewGetOrdersQueryForCustomer(customerID)
//	handler := NewGetOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
type GetOrdersQuery struct {
	customerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an unfiltered query over all orders.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetOrdersQueryForCustomer creates a query restricted to one customer.
func NewGetOrdersQueryForCustomer(customerID kernel.UUID) (GetOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		customerID: &customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// CustomerID returns the customer filter, or nil for the unfiltered form.
func (q GetOrdersQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

// GetOrdersQueryResponse is one order summary row in the read model.
type GetOrdersQueryResponse struct {
	ID           kernel.UUID
	Status       string
	ReturnStatus string
	Total        float64
	City         string
	Pincode      string
	ItemCount    int
	CreatedAt    time.Time
}
