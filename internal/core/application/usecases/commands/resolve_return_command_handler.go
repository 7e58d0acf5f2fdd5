package commands

import (
	"context"
	"fmt"
	"time"

	"grocery/internal/core/ports"
)

// ResolveReturnCommandHandler advances the return workflow of a stored
// order and notifies the customer of the outcome.
type ResolveReturnCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewResolveReturnCommandHandler creates a handler for return resolution.
func NewResolveReturnCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) ResolveReturnCommandHandler {
	return ResolveReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle loads the order, advances its return request, and persists the
// result.
func (h *ResolveReturnCommandHandler) Handle(ctx context.Context, cmd ResolveReturnCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ResolveReturn(cmd.Target(), cmd.Role()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.Publish(ctx, ports.Notification{
		OrderID:    aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Kind:       ports.NotificationReturnUpdated,
		Message:    fmt.Sprintf("return request for order %s is now %s", aggregate.ID(), aggregate.Return().Status()),
		At:         time.Now(),
	})

	return nil
}
