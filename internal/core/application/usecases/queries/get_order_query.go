package queries

import (
	"errors"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full detail of a single order, including its
// lines, address snapshot, and return request if one was filed.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the full order detail read model.
type GetOrderQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	Status     string
	Total      float64
	CreatedAt  time.Time
	Items      []OrderItemResponse
	Address    OrderAddressResponse
	Return     *OrderReturnResponse
}

// OrderItemResponse is one order line in the read model.
type OrderItemResponse struct {
	ProductRef kernel.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
	Subtotal   float64
}

// OrderAddressResponse is the delivery address snapshot in the read model.
type OrderAddressResponse struct {
	Street    string
	City      string
	State     string
	Pincode   string
	Landmark  string
	Latitude  *float64
	Longitude *float64
}

// OrderReturnResponse is the return request detail, present only when a
// request was filed.
type OrderReturnResponse struct {
	Status      string
	Reason      string
	Description string
	Items       []kernel.UUID
	RequestedAt time.Time
}
