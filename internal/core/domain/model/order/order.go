package order

import (
	"errors"
	"fmt"
	"time"

	"grocery/internal/core/domain/model/address"
	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a placed grocery order.
//
// Invariants:
//   - items are non-empty and immutable after creation
//   - the address is a snapshot taken at creation and never re-validated
//   - total equals the sum of item subtotals, computed once at creation
//   - status transitions follow the role-gated table in Status
//   - a return request exists at most once and only for delivered orders
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []Item
	address    address.Address
	total      float64
	createdAt  time.Time
	status     Status
	ret        *ReturnRequest

	isConstructed bool
}

// NewOrder creates an order in Pending status with the total computed from
// its items. The items slice is copied; later changes to the caller's slice
// do not affect the order.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	deliveryAddress address.Address,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	o.total = 0
	for _, item := range o.items {
		o.total += item.Subtotal()
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, trusting the stored
// status, total, and return request. ret may be nil.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	deliveryAddress address.Address,
	total float64,
	createdAt time.Time,
	status Status,
	ret *ReturnRequest,
) (*Order, error) {
	o := &Order{
		total:         total,
		createdAt:     createdAt,
		ret:           ret,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(deliveryAddress),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Address returns the delivery address snapshot.
func (o *Order) Address() address.Address {
	return o.address
}

// Total returns the order total computed at creation.
func (o *Order) Total() float64 {
	return o.total
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Return returns the attached return request, or nil when none was filed.
func (o *Order) Return() *ReturnRequest {
	return o.ret
}

// ChangeStatus performs a role-gated lifecycle transition. On rejection the
// order's status is guaranteed unchanged and the error unwraps to
// errs.ErrInvalidTransition.
//
// Example:
//
//	err := ord.ChangeStatus(order.Processing, order.RoleOwner) // owner accepts
func (o *Order) ChangeStatus(target Status, role Role) error {
	newStatus, err := o.status.TransitionTo(target, role)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Accept moves a pending order into processing (owner action).
func (o *Order) Accept() error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject cancels a pending order (owner action).
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel cancels the order on behalf of the customer. Permitted only while
// the order is pending, processing, or shipped.
func (o *Order) Cancel() error {
	return o.ChangeStatus(Cancelled, RoleCustomer)
}

// FileReturn attaches a return/refund request to a delivered order.
//
// Guards:
//   - the order must be in Delivered status (filing never changes it)
//   - no request may have been filed before, whatever its state
//   - the reason must come from the fixed vocabulary
//   - an explicit item selection must reference items of this order;
//     an empty selection defaults to all items
func (o *Order) FileReturn(
	reason ReturnReason,
	description string,
	items []kernel.UUID,
	requestedAt time.Time,
) error {
	if o.status != Delivered {
		return errs.NewInvalidTransitionErrorWithCause(
			ReturnNone.String(), ReturnPending.String(), RoleCustomer.String(),
			fmt.Errorf("order is %s, only delivered orders can be returned", o.status))
	}

	if o.ret != nil {
		return errs.NewInvalidTransitionErrorWithCause(
			o.ret.Status().String(), ReturnPending.String(), RoleCustomer.String(),
			fmt.Errorf("a return request was already filed"))
	}

	if err := reason.Validate(); err != nil {
		return err
	}

	selection, err := o.resolveReturnSelection(items)
	if err != nil {
		return err
	}

	o.ret = newReturnRequest(reason, description, selection, requestedAt)
	return nil
}

// ResolveReturn advances the return workflow (owner-side). The order must
// carry a filed request.
func (o *Order) ResolveReturn(target ReturnStatus, role Role) error {
	if o.ret == nil {
		return errs.NewInvalidTransitionError(ReturnNone.String(), target.String(), role.String())
	}

	newStatus, err := o.ret.status.Resolve(target, role)
	if err != nil {
		return err
	}

	o.ret.status = newStatus
	return nil
}

// resolveReturnSelection defaults an empty selection to all items and checks
// an explicit one against the order lines.
func (o *Order) resolveReturnSelection(items []kernel.UUID) ([]kernel.UUID, error) {
	if len(items) == 0 {
		all := make([]kernel.UUID, 0, len(o.items))
		for _, item := range o.items {
			all = append(all, item.ProductRef())
		}
		return all, nil
	}

	selection := make([]kernel.UUID, 0, len(items))
	for _, ref := range items {
		found := false
		for _, item := range o.items {
			if item.ProductRef().IsEqual(ref) {
				found = true
				break
			}
		}
		if !found {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("product %s is not part of the order", ref))
		}
		selection = append(selection, ref)
	}

	return selection, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddress(deliveryAddress address.Address) error {
	if err := deliveryAddress.Validate(); err != nil {
		return err
	}
	o.address = deliveryAddress
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
