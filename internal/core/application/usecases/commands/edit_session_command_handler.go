package commands

import (
	"context"
	"errors"
	"time"

	"grocery/internal/core/domain/model/checkout"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// EditSessionCommandHandler applies manual address edits to the checkout
// session. Edits to the pincode or the coordinates invalidate any delivery
// verdict the session carried.
type EditSessionCommandHandler struct {
	sessions ports.SessionStore
}

// NewEditSessionCommandHandler creates a handler for session edits.
func NewEditSessionCommandHandler(sessions ports.SessionStore) EditSessionCommandHandler {
	return EditSessionCommandHandler{
		sessions: sessions,
	}
}

// Handle fetches (or creates) the session, applies the edits, and saves it.
func (h *EditSessionCommandHandler) Handle(ctx context.Context, cmd EditSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		session, err = checkout.NewSession(cmd.CustomerID(), time.Now())
	}
	if err != nil {
		return err
	}

	now := time.Now()
	edits := cmd.Edits()

	if edits.Street != nil {
		session.SetStreet(*edits.Street, now)
	}
	if edits.City != nil {
		session.SetCity(*edits.City, now)
	}
	if edits.State != nil {
		session.SetState(*edits.State, now)
	}
	if edits.Landmark != nil {
		session.SetLandmark(*edits.Landmark, now)
	}
	if edits.Pincode != nil {
		session.SetPincode(*edits.Pincode, now)
	}
	if edits.Latitude != nil {
		point, err := kernel.NewGeoPoint(*edits.Latitude, *edits.Longitude)
		if err != nil {
			return err
		}
		if err = session.SetCoordinates(point, now); err != nil {
			return err
		}
	}
	if edits.ClearCoordinates {
		session.ClearCoordinates(now)
	}

	return h.sessions.Save(ctx, session)
}
