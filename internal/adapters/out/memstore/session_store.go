// Package memstore keeps checkout sessions in process memory. Sessions are
// short-lived drafts; losing them on restart only means the customer
// re-enters an address, so no durable backend is warranted.
package memstore

import (
	"context"
	"sync"
	"time"

	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

// SessionStore is a mutex-guarded in-memory SessionStore implementation.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[kernel.UUID]*checkout.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[kernel.UUID]*checkout.Session),
	}
}

// Get retrieves the customer's session.
func (s *SessionStore) Get(_ context.Context, customerID kernel.UUID) (*checkout.Session, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[customerID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", customerID.String())
	}
	return session, nil
}

// Save persists the session, replacing any previous one for the customer.
func (s *SessionStore) Save(_ context.Context, session *checkout.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.CustomerID()] = session
	return nil
}

// Delete removes the customer's session. Deleting an absent session is not
// an error.
func (s *SessionStore) Delete(_ context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, customerID)
	return nil
}

// PurgeExpired drops every session idle for at least ttl and returns how
// many were removed.
func (s *SessionStore) PurgeExpired(_ context.Context, now time.Time, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for customerID, session := range s.sessions {
		if session.IsExpired(now, ttl) {
			delete(s.sessions, customerID)
			removed++
		}
	}
	return removed, nil
}
