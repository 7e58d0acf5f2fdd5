package commands

import (
	"context"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/core/ports"
	"grocery/internal/pkg/errs"
)

// CheckoutCommandHandler turns a cart plus a validated checkout session into
// a placed order.
//
// Checkout is refused unless the customer's session is ready: the address is
// complete and carries an eligible delivery verdict for its current input
// version. The order is created and the cart consumed in one transaction; on
// any failure the cart is untouched.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	sessions   ports.SessionStore
	notifier   ports.Notifier
}

// NewCheckoutCommandHandler creates a handler for order placement.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	sessions ports.SessionStore,
	notifier ports.Notifier,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		sessions:   sessions,
		notifier:   notifier,
	}
}

// Handle places the order and returns its identifier.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	session, err := h.sessions.Get(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	deliveryAddress, err := session.DeliveryAddress()
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	basket, err := uow.CartRepository().Get(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if basket.IsEmpty() {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("cart",
			fmt.Errorf("cannot check out an empty cart"))
	}

	now := time.Now()
	placed, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), basket.Items(), deliveryAddress, now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.CartRepository().Delete(ctx, cmd.CustomerID()); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	// Delivery is asynchronous; a queue failure must not undo the order.
	_ = h.notifier.Publish(ctx, ports.Notification{
		OrderID:    placed.ID(),
		CustomerID: placed.CustomerID(),
		Kind:       ports.NotificationOrderPlaced,
		Message:    fmt.Sprintf("order %s placed, total %.2f", placed.ID(), placed.Total()),
		At:         now,
	})

	return placed.ID(), nil
}
