package commands

import (
	"context"
	"time"

	"grocery/internal/core/domain/model/cart"
)

// UpdateCartCommandHandler persists cart snapshots. The cart is replaced
// wholesale; there is no line-level merging.
type UpdateCartCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpdateCartCommandHandler creates a handler for cart updates.
func NewUpdateCartCommandHandler(uowFactory CartUoWFactory) UpdateCartCommandHandler {
	return UpdateCartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the customer's cart with the command's lines.
func (h *UpdateCartCommandHandler) Handle(ctx context.Context, cmd UpdateCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := cart.RestoreCart(cmd.CustomerID(), cmd.Items(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CartRepository().Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
