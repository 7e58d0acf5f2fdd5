package commands

import (
	"context"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a role-gated lifecycle transition
// to a stored order. The store is the authority: the new status exists only
// once the transaction commits, and a rejected transition leaves the stored
// order untouched.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle loads the order, performs the transition, and persists the result.
// Customers may only touch their own orders.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	// Orders of other customers are invisible to a customer, not forbidden.
	if cmd.Role() == order.RoleCustomer && !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
		return errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	if err = aggregate.ChangeStatus(cmd.Target(), cmd.Role()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Delivery is asynchronous; a queue failure must not undo the change.
	_ = h.notifier.Publish(ctx, ports.Notification{
		OrderID:    aggregate.ID(),
		CustomerID: aggregate.CustomerID(),
		Kind:       ports.NotificationStatusChanged,
		Message:    fmt.Sprintf("order %s is now %s", aggregate.ID(), aggregate.Status()),
		At:         time.Now(),
	})

	return nil
}
