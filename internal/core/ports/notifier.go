package ports

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/kernel"
)

// Notification kinds published by the storefront.
const (
	NotificationOrderPlaced   = "order_placed"
	NotificationStatusChanged = "status_changed"
	NotificationReturnUpdated = "return_updated"
)

// Notification is a fire-and-forget message for the customer about one of
// their orders.
type Notification struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Kind       string
	Message    string
	At         time.Time
}

// Notifier accepts notifications for asynchronous delivery. Publishing must
// be cheap and must not fail a business operation: implementations queue and
// deliver later.
type Notifier interface {
	Publish(ctx context.Context, n Notification) error
}
