package commands

import (
	"errors"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order through its lifecycle on behalf of
// an actor. The same command carries owner actions (accept, reject, manual
// override) and the customer's cancel; the role decides which transitions
// the domain permits.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(orderID, actorID, order.Processing, order.RoleOwner)
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status change failed: %w", err)
//	}
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	target  order.Status
	role    order.Role

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a status-change command. The actor is
// the authenticated user performing the change; for customers it is matched
// against the order's owner.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	target order.Status,
	role order.Role,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setTarget(target),
		cmd.setRole(role),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being changed.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the user performing the change.
func (c UpdateOrderStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Target returns the requested lifecycle status.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Role returns the actor's role.
func (c UpdateOrderStatusCommand) Role() order.Role {
	return c.role
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *UpdateOrderStatusCommand) setRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
