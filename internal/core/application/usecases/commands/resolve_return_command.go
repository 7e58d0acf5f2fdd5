package commands

import (
	"errors"
	"fmt"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/core/domain/model/order"
	"grocery/internal/pkg/errs"
	"grocery/internal/pkg/guard"
)

var ErrResolveReturnCommandIsNotConstructed = errors.New(
	"ResolveReturnCommand must be created via NewResolveReturnCommand constructor",
)

// ResolveReturnCommand advances an order's return workflow: approve or
// reject a pending request, mark an approved one returned, refund a
// returned one. The domain restricts resolution to the owner role.
type ResolveReturnCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.ReturnStatus
	role    order.Role

	guard guard.ConstructorGuard
}

// NewResolveReturnCommand creates a return-resolution command.
func NewResolveReturnCommand(
	orderID kernel.UUID,
	target order.ReturnStatus,
	role order.Role,
) (ResolveReturnCommand, error) {
	cmd := ResolveReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setRole(role),
	); err != nil {
		return ResolveReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveReturnCommand) Validate() error {
	return c.guard.Validate(ErrResolveReturnCommandIsNotConstructed)
}

// OrderID returns the order whose return is being resolved.
func (c ResolveReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested return status.
func (c ResolveReturnCommand) Target() order.ReturnStatus {
	return c.target
}

// Role returns the actor's role.
func (c ResolveReturnCommand) Role() order.Role {
	return c.role
}

func (c *ResolveReturnCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveReturnCommand) setTarget(target order.ReturnStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == order.ReturnNone {
		return errs.NewValueIsInvalidErrorWithCause("returnStatus",
			fmt.Errorf("a return cannot be resolved back to the unfiled state"))
	}

	c.target = target
	return nil
}

func (c *ResolveReturnCommand) setRole(role order.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}
