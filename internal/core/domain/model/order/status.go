package order

import (
	"fmt"

	"grocery/internal/pkg/errs"
)

// Role identifies who is requesting a lifecycle transition. The transition
// tables are gated per role: customers and the shop owner are allowed
// different moves from the same state.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is a shopper acting on their own orders.
	RoleCustomer

	// RoleOwner is the shop owner acting through the management console.
	RoleOwner
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleOwner:    "owner",
	}
}

// RoleFromString parses a role name as it appears on the wire.
// Returns an error for anything other than "customer" or "owner".
func RoleFromString(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "owner":
		return RoleOwner, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", s))
	}
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if r != RoleCustomer && r != RoleOwner {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire-format name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Status represents the lifecycle state of an order.
// It implements a state machine with role-gated transitions:
//
//	pending ──> processing ──> shipped ──> delivered
//	   │             │            │
//	   └─────────────┴────────────┴──> cancelled
//
// The owner accepts (pending -> processing), rejects (pending -> cancelled),
// or overrides the status of any live order from the management console.
// Customers may only cancel, and only before delivery. Delivered and
// cancelled are terminal for this machine.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status await acceptance or rejection by the owner.
	Pending

	// Processing indicates the owner accepted the order and is preparing it.
	Processing

	// Shipped indicates the order has left the shop for delivery.
	Shipped

	// Delivered indicates the order reached the customer. Terminal for the
	// primary machine; a return request may still be attached.
	Delivered

	// Cancelled indicates the order was cancelled by the customer or
	// rejected by the owner. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// StatusFromString parses a status name as it appears on the wire.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// This method implements the fmt.Stringer interface and is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further primary-machine
// transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// transition is a key into the declarative transition table.
type transition struct {
	from Status
	to   Status
	role Role
}

// getTransitionTable enumerates every legal (from, to, role) triple.
// Keeping the table explicit makes each rule individually testable and
// leaves no transition implied by fall-through logic:
//   - the owner may move any live order to any valid status (accept, reject,
//     and every console override are instances of this rule)
//   - the customer may move a live, undelivered order to cancelled
func getTransitionTable() map[transition]struct{} {
	table := make(map[transition]struct{})

	live := []Status{Pending, Processing, Shipped}
	all := []Status{Pending, Processing, Shipped, Delivered, Cancelled}

	for _, from := range live {
		for _, to := range all {
			table[transition{from: from, to: to, role: RoleOwner}] = struct{}{}
		}
		table[transition{from: from, to: Cancelled, role: RoleCustomer}] = struct{}{}
	}

	return table
}

// CanTransitionTo reports whether the move to target is permitted for role,
// without performing it.
func (s Status) CanTransitionTo(target Status, role Role) bool {
	_, ok := getTransitionTable()[transition{from: s, to: target, role: role}]
	return ok
}

// TransitionTo returns the new status after a legal transition, or an
// InvalidTransitionError leaving the caller's state untouched.
//
// Example:
//
//	next, err := order.Pending.TransitionTo(order.Processing, order.RoleOwner)
//	// next == order.Processing
//
//	_, err = order.Delivered.TransitionTo(order.Cancelled, order.RoleCustomer)
//	// err unwraps to errs.ErrInvalidTransition
func (s Status) TransitionTo(target Status, role Role) (Status, error) {
	if err := role.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(target, role) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String(), role.String())
	}

	return target, nil
}

// Accept is the owner action that moves a pending order into processing.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), Processing.String(), RoleOwner.String(),
			fmt.Errorf("only pending orders can be accepted"))
	}
	return s.TransitionTo(Processing, RoleOwner)
}

// Reject is the owner action that cancels a pending order.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), Cancelled.String(), RoleOwner.String(),
			fmt.Errorf("only pending orders can be rejected"))
	}
	return s.TransitionTo(Cancelled, RoleOwner)
}
