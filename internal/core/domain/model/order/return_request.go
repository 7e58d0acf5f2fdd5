package order

import (
	"fmt"
	"time"

	"grocery/internal/core/domain/model/kernel"
	"grocery/internal/pkg/errs"
)

// ReturnStatus represents the state of the return/refund workflow layered on
// top of a delivered order. It is independent of the primary Status machine:
//
//	none ──> pending ──┬──> approved ──> returned ──> refunded
//	                   └──> rejected
//
// The customer files the request (none -> pending); every later move is an
// owner-side resolution. Returned and refunded are terminal, as is rejected.
type ReturnStatus int

const (
	// ReturnNone means no return request has been filed. This is the zero
	// value on purpose: an order without a request carries no return state.
	ReturnNone ReturnStatus = iota

	// ReturnPending means the customer filed a request awaiting resolution.
	ReturnPending

	// ReturnApproved means the owner accepted the request.
	ReturnApproved

	// ReturnRejected means the owner declined the request. Terminal.
	ReturnRejected

	// ReturnReturned means the goods came back to the shop.
	ReturnReturned

	// ReturnRefunded means the customer was paid back. Terminal.
	ReturnRefunded
)

// getReturnStatusStrings returns a map of ReturnStatus values to wire names.
// ReturnNone maps to the empty string: the field is absent until filed.
func getReturnStatusStrings() map[ReturnStatus]string {
	return map[ReturnStatus]string{
		ReturnNone:     "",
		ReturnPending:  "pending",
		ReturnApproved: "approved",
		ReturnRejected: "rejected",
		ReturnReturned: "returned",
		ReturnRefunded: "refunded",
	}
}

// ReturnStatusFromString parses a return status name as it appears on the
// wire. The empty string parses to ReturnNone.
func ReturnStatusFromString(s string) (ReturnStatus, error) {
	for status, str := range getReturnStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return ReturnNone, errs.NewValueIsInvalidErrorWithCause("returnStatus",
		fmt.Errorf("%q is not a valid return status", s))
}

// String returns the wire-format name of the return status.
func (s ReturnStatus) String() string {
	if str, ok := getReturnStatusStrings()[s]; ok {
		return str
	}
	return ""
}

// Validate checks if the ReturnStatus value is one of the defined states.
func (s ReturnStatus) Validate() error {
	if _, ok := getReturnStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("returnStatus",
			fmt.Errorf("%d is not a valid return status", s))
	}
	return nil
}

// IsResolved reports whether the workflow reached a terminal state.
func (s ReturnStatus) IsResolved() bool {
	return s == ReturnRejected || s == ReturnRefunded
}

// getReturnTransitionTable enumerates the legal owner-side resolutions.
// Filing (none -> pending) is not in the table; it goes through
// Order.FileReturn, which guards the filed-at-most-once rule.
func getReturnTransitionTable() map[transitionReturn]struct{} {
	return map[transitionReturn]struct{}{
		{from: ReturnPending, to: ReturnApproved}:  {},
		{from: ReturnPending, to: ReturnRejected}:  {},
		{from: ReturnApproved, to: ReturnReturned}: {},
		{from: ReturnReturned, to: ReturnRefunded}: {},
	}
}

type transitionReturn struct {
	from ReturnStatus
	to   ReturnStatus
}

// Resolve returns the new return status after a legal owner-side move, or an
// InvalidTransitionError. Only the owner advances the workflow past pending.
func (s ReturnStatus) Resolve(target ReturnStatus, role Role) (ReturnStatus, error) {
	if err := role.Validate(); err != nil {
		return ReturnNone, err
	}

	if role != RoleOwner {
		return ReturnNone, errs.NewInvalidTransitionError(s.String(), target.String(), role.String())
	}

	if _, ok := getReturnTransitionTable()[transitionReturn{from: s, to: target}]; !ok {
		return ReturnNone, errs.NewInvalidTransitionError(s.String(), target.String(), role.String())
	}

	return target, nil
}

// ReturnReason is the fixed category vocabulary a customer must pick from
// when filing a return request.
type ReturnReason int

const (
	// ReasonUnknown represents an invalid or undefined reason.
	ReasonUnknown ReturnReason = iota

	// ReasonBroken means the item arrived damaged.
	ReasonBroken

	// ReasonSpoiled means the item was spoiled on arrival.
	ReasonSpoiled

	// ReasonExpired means the item was past its expiry date.
	ReasonExpired

	// ReasonWrongItem means a different item was delivered.
	ReasonWrongItem

	// ReasonOther covers everything else; the free-text description carries
	// the detail.
	ReasonOther
)

// getReturnReasonStrings returns a map of ReturnReason values to wire names.
func getReturnReasonStrings() map[ReturnReason]string {
	return map[ReturnReason]string{
		ReasonBroken:    "broken",
		ReasonSpoiled:   "spoiled",
		ReasonExpired:   "expired",
		ReasonWrongItem: "wrong_item",
		ReasonOther:     "other",
	}
}

// ReturnReasonFromString parses a reason tag as it appears on the wire.
func ReturnReasonFromString(s string) (ReturnReason, error) {
	for reason, str := range getReturnReasonStrings() {
		if str == s {
			return reason, nil
		}
	}
	return ReasonUnknown, errs.NewValueIsInvalidErrorWithCause("reason",
		fmt.Errorf("%q is not a valid return reason", s))
}

// String returns the wire-format tag of the reason.
func (r ReturnReason) String() string {
	if str, ok := getReturnReasonStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the ReturnReason is part of the vocabulary.
func (r ReturnReason) Validate() error {
	if _, ok := getReturnReasonStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("%d is not a valid return reason", r))
	}
	return nil
}

// ReturnRequest captures a filed return/refund request: the workflow state,
// the reason, an optional free-text description, the selected items
// (defaulting to all items of the order), and the filing time.
type ReturnRequest struct {
	status      ReturnStatus
	reason      ReturnReason
	description string
	items       []kernel.UUID
	requestedAt time.Time
}

// newReturnRequest is called by Order.FileReturn once the filing guards have
// passed. items has already been defaulted and checked against the order.
func newReturnRequest(reason ReturnReason, description string, items []kernel.UUID, requestedAt time.Time) *ReturnRequest {
	return &ReturnRequest{
		status:      ReturnPending,
		reason:      reason,
		description: description,
		items:       items,
		requestedAt: requestedAt,
	}
}

// RestoreReturnRequest reconstructs a request from persistence without
// running the filing guards.
func RestoreReturnRequest(
	status ReturnStatus,
	reason ReturnReason,
	description string,
	items []kernel.UUID,
	requestedAt time.Time,
) (*ReturnRequest, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status == ReturnNone {
		return nil, errs.NewValueIsInvalidErrorWithCause("returnStatus",
			fmt.Errorf("a persisted return request cannot be in the %q state", ReturnNone))
	}
	if err := reason.Validate(); err != nil {
		return nil, err
	}

	return &ReturnRequest{
		status:      status,
		reason:      reason,
		description: description,
		items:       items,
		requestedAt: requestedAt,
	}, nil
}

// Status returns the current workflow state.
func (r *ReturnRequest) Status() ReturnStatus {
	return r.status
}

// Reason returns the filed reason category.
func (r *ReturnRequest) Reason() ReturnReason {
	return r.reason
}

// Description returns the optional free-text detail.
func (r *ReturnRequest) Description() string {
	return r.description
}

// Items returns the product references the request covers.
func (r *ReturnRequest) Items() []kernel.UUID {
	out := make([]kernel.UUID, len(r.items))
	copy(out, r.items)
	return out
}

// RequestedAt returns the filing time.
func (r *ReturnRequest) RequestedAt() time.Time {
	return r.requestedAt
}
