// Package notify buffers customer notifications for asynchronous delivery.
// Publishing appends to an in-memory outbox; a scheduled job drains the
// outbox and hands the batch to the delivery channel. A delivery problem
// therefore never fails the business operation that produced the
// notification.
package notify

import (
	"context"
	"sync"

	"grocery/internal/core/ports"
)

// Outbox is an in-memory Notifier implementation.
type Outbox struct {
	mu      sync.Mutex
	pending []ports.Notification
}

// NewOutbox creates an empty outbox.
func NewOutbox() *Outbox {
	return &Outbox{}
}

// Publish enqueues a notification. It never blocks and never fails.
func (o *Outbox) Publish(_ context.Context, n ports.Notification) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending = append(o.pending, n)
	return nil
}

// Drain removes and returns every pending notification, oldest first.
func (o *Outbox) Drain() []ports.Notification {
	o.mu.Lock()
	defer o.mu.Unlock()

	batch := o.pending
	o.pending = nil
	return batch
}

// Len reports how many notifications are pending.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.pending)
}
