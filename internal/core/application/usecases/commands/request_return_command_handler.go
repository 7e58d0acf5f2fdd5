package commands

import (
	"context"
	"fmt"
	"time"

	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// RequestReturnCommandHandler files a customer's return request. The domain
// enforces the guards (delivered order, single filing, known reason, items
// belonging to the order); the handler adds ownership and persistence.
type RequestReturnCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewRequestReturnCommandHandler creates a handler for return filing.
func NewRequestReturnCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) RequestReturnCommandHandler {
	return RequestReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle loads the order, attaches the return request, and persists it.
func (h *RequestReturnCommandHandler) Handle(ctx context.Context, cmd RequestReturnCommand) error {
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

	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("order", cmd.OrderID())
	}

	now := time.Now()
	if err = aggregate.FileReturn(cmd.Reason(), cmd.Description(), cmd.Items(), now); err != nil {
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
		Message:    fmt.Sprintf("return request for order %s filed", aggregate.ID()),
		At:         now,
	})

	return nil
}
