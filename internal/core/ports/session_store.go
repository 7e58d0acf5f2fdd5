package ports

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/domain/model/kernel"
)

// SessionStore holds the checkout sessions customers are editing. Sessions
// are keyed by customer; each customer has at most one.
type SessionStore interface {
	// Get retrieves the customer's session. Returns an error unwrapping to
	// errs.ErrObjectNotFound when no session exists.
	Get(ctx context.Context, customerID kernel.UUID) (*checkout.Session, error)

	// Save persists the session, replacing any previous one for the same
	// customer.
	Save(ctx context.Context, session *checkout.Session) error

	// Delete removes the customer's session. Deleting an absent session is
	// not an error.
	Delete(ctx context.Context, customerID kernel.UUID) error

	// PurgeExpired drops every session idle for at least ttl and returns
	// how many were removed.
	PurgeExpired(ctx context.Context, now time.Time, ttl time.Duration) (int, error)
}
